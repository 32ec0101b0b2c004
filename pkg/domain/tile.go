package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

// TileSize is the edge length of a tile in pixels.
const TileSize = 256

// ErrTileOutOfRange is returned by PolicyReject for tiles outside the grid.
var ErrTileOutOfRange = errors.New("tile out of range")

// LatLon is a WGS84 point in degrees.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (p LatLon) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lon)
}

// TileIndex addresses one cell of the 2^zoom x 2^zoom slippy map grid.
// X grows east from the antimeridian, Y grows south from the top edge.
type TileIndex struct {
	Zoom int `json:"zoom"`
	X    int `json:"x"`
	Y    int `json:"y"`
}

func (t TileIndex) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Zoom, t.X, t.Y)
}

// TileAt converts a point to the tile containing it at the given zoom.
//
// The result is not clamped: latitudes beyond ±85.0511 and longitude 180
// produce indices outside [0, 2^zoom).
func TileAt(p LatLon, zoom int) TileIndex {
	n := math.Exp2(float64(zoom))
	latRad := p.Lat * math.Pi / 180
	x := math.Floor((p.Lon + 180) / 360 * n)
	y := math.Floor((1 - math.Asinh(math.Tan(latRad))/math.Pi) / 2 * n)
	return TileIndex{Zoom: zoom, X: int(x), Y: int(y)}
}

// gridSize returns 2^zoom, or 0 for a negative zoom.
func gridSize(zoom int) int {
	if zoom < 0 || zoom > 30 {
		return 0
	}
	return 1 << zoom
}

// InRange reports whether t lies inside the grid for its zoom level.
func (t TileIndex) InRange() bool {
	n := gridSize(t.Zoom)
	return n > 0 && t.X >= 0 && t.X < n && t.Y >= 0 && t.Y < n
}

// Bound returns the geographic extent of t. ok is false when t is not in range.
func (t TileIndex) Bound() (b orb.Bound, ok bool) {
	if !t.InRange() {
		return orb.Bound{}, false
	}
	return maptile.New(uint32(t.X), uint32(t.Y), maptile.Zoom(t.Zoom)).Bound(), true
}

// Policy decides what happens to a tile index outside the grid.
type Policy string

const (
	PolicyNone   Policy = "none"
	PolicyReject Policy = "reject"
	PolicyClamp  Policy = "clamp"
	PolicyWrap   Policy = "wrap"
)

// Policies lists the accepted policy names.
var Policies = []Policy{PolicyNone, PolicyReject, PolicyClamp, PolicyWrap}

// ParsePolicy parses a policy name. The empty string means PolicyNone.
func ParsePolicy(s string) (Policy, error) {
	if s == "" {
		return PolicyNone, nil
	}
	for _, p := range Policies {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown tile policy %q (want one of none, reject, clamp, wrap)", s)
}

// Apply returns t adjusted according to the policy.
// Wrapping only applies to X; there is no wrap across the poles so Y is clamped.
func (p Policy) Apply(t TileIndex) (TileIndex, error) {
	if p == "" || p == PolicyNone || t.InRange() {
		return t, nil
	}
	n := gridSize(t.Zoom)
	switch p {
	case PolicyReject:
		return t, fmt.Errorf("%w: %s is outside [0, %d)", ErrTileOutOfRange, t, n)
	case PolicyClamp:
		if n == 0 {
			return t, fmt.Errorf("%w: zoom %d", ErrTileOutOfRange, t.Zoom)
		}
		t.X = clamp(t.X, 0, n-1)
		t.Y = clamp(t.Y, 0, n-1)
		return t, nil
	case PolicyWrap:
		if n == 0 {
			return t, fmt.Errorf("%w: zoom %d", ErrTileOutOfRange, t.Zoom)
		}
		t.X = ((t.X % n) + n) % n
		t.Y = clamp(t.Y, 0, n-1)
		return t, nil
	default:
		return t, fmt.Errorf("unknown tile policy %q", string(p))
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

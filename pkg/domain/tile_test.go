package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reference evaluates the log(tan + sec) form of the slippy map formula.
func reference(lat, lon float64, zoom int) (int, int) {
	n := math.Pow(2, float64(zoom))
	r := lat * math.Pi / 180
	x := math.Floor((lon + 180) / 360 * n)
	y := math.Floor((1 - math.Log(math.Tan(r)+1/math.Cos(r))/math.Pi) / 2 * n)
	return int(x), int(y)
}

func TestTileAtFixtures(t *testing.T) {
	tests := []struct {
		name string
		p    LatLon
		zoom int
		want TileIndex
	}{
		{"san francisco z16", LatLon{37.7749, -122.4194}, 16, TileIndex{16, 10482, 25331}},
		{"chicago z7", LatLon{41.850033, -87.65005229999997}, 7, TileIndex{7, 32, 47}},
		{"chicago z14", LatLon{41.850033, -87.65005229999997}, 14, TileIndex{14, 4202, 6091}},
		{"lahaina banyan court z18", LatLon{20.871660992482585, -156.6779217812668}, 18, TileIndex{18, 16982, 115525}},
		{"null island z1", LatLon{0, 0}, 1, TileIndex{1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TileAt(tt.p, tt.zoom))
		})
	}
}

func TestTileAtMatchesReferenceFormula(t *testing.T) {
	for zoom := 0; zoom <= 21; zoom++ {
		for lat := -84.5; lat < 85; lat += 7.3 {
			for lon := -179.5; lon < 180; lon += 11.9 {
				got := TileAt(LatLon{lat, lon}, zoom)
				x, y := reference(lat, lon, zoom)
				require.Equalf(t, TileIndex{zoom, x, y}, got, "lat=%v lon=%v zoom=%d", lat, lon, zoom)
			}
		}
	}
}

func TestTileAtInRangeBelowPoles(t *testing.T) {
	for zoom := 0; zoom <= 21; zoom++ {
		n := 1 << zoom
		for lat := -84.9; lat < 85; lat += 3.7 {
			for lon := -180.0; lon < 180; lon += 13.1 {
				tile := TileAt(LatLon{lat, lon}, zoom)
				assert.Truef(t, tile.X >= 0 && tile.X < n, "x=%d out of [0,%d) for %v,%v", tile.X, n, lat, lon)
				assert.Truef(t, tile.Y >= 0 && tile.Y < n, "y=%d out of [0,%d) for %v,%v", tile.Y, n, lat, lon)
				assert.True(t, tile.InRange())
			}
		}
	}
}

func TestTileAtDeterministic(t *testing.T) {
	p := LatLon{Lat: -33.8688, Lon: 151.2093}
	first := TileAt(p, 12)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, TileAt(p, 12))
	}
}

func TestTileAtZoomZero(t *testing.T) {
	for _, p := range []LatLon{{0, 0}, {84, -179}, {-84, 179}, {51.5, -0.12}, {-45, 90}} {
		assert.Equal(t, TileIndex{0, 0, 0}, TileAt(p, 0), "point %v", p)
	}
}

func TestTileAtNearPolesLeavesGrid(t *testing.T) {
	north := TileAt(LatLon{89.9, 0}, 3)
	assert.Equal(t, TileIndex{3, 4, -5}, north)
	assert.False(t, north.InRange())

	east := TileAt(LatLon{0, 180}, 2)
	assert.Equal(t, TileIndex{2, 4, 2}, east)
	assert.False(t, east.InRange())
}

func TestBound(t *testing.T) {
	b, ok := TileIndex{Zoom: 0}.Bound()
	require.True(t, ok)
	assert.InDelta(t, -180, b.Min.Lon(), 1e-9)
	assert.InDelta(t, 180, b.Max.Lon(), 1e-9)
	assert.InDelta(t, 85.0511, b.Max.Lat(), 1e-4)

	sf := TileAt(LatLon{37.7749, -122.4194}, 16)
	b, ok = sf.Bound()
	require.True(t, ok)
	assert.True(t, b.Min.Lat() <= 37.7749 && 37.7749 <= b.Max.Lat())
	assert.True(t, b.Min.Lon() <= -122.4194 && -122.4194 <= b.Max.Lon())

	_, ok = TileIndex{Zoom: 3, X: 4, Y: -5}.Bound()
	assert.False(t, ok)
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicyNone, false},
		{"none", PolicyNone, false},
		{"reject", PolicyReject, false},
		{"CLAMP", PolicyClamp, false},
		{"wrap", PolicyWrap, false},
		{"modulo", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicyApply(t *testing.T) {
	outside := TileIndex{Zoom: 3, X: 9, Y: -5}
	inside := TileIndex{Zoom: 3, X: 2, Y: 5}

	tests := []struct {
		name   string
		policy Policy
		in     TileIndex
		want   TileIndex
		err    error
	}{
		{"none passes through", PolicyNone, outside, outside, nil},
		{"reject in range", PolicyReject, inside, inside, nil},
		{"reject out of range", PolicyReject, outside, outside, ErrTileOutOfRange},
		{"clamp", PolicyClamp, outside, TileIndex{3, 7, 0}, nil},
		{"wrap", PolicyWrap, outside, TileIndex{3, 1, 0}, nil},
		{"wrap negative x", PolicyWrap, TileIndex{2, -1, 9}, TileIndex{2, 3, 3}, nil},
		{"clamp negative zoom", PolicyClamp, TileIndex{-1, 0, 0}, TileIndex{-1, 0, 0}, ErrTileOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.policy.Apply(tt.in)
			if tt.err != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.err), "err = %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

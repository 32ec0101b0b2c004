// Package grab runs one authenticate → convert → download sequence.
package grab

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/naveenspark/tilegrab/internal/status"
	"github.com/naveenspark/tilegrab/pkg/domain"
)

// Params are the inputs of one run, however they were collected.
type Params struct {
	Location domain.LatLon
	Zoom     int
	Session  domain.SessionRequest
	Policy   domain.Policy
}

// Result describes a completed run.
type Result struct {
	Tile    domain.TileIndex
	Session *domain.Session
	Path    string
}

// Authenticator creates a tile session. Implemented by *client.Client.
type Authenticator interface {
	CreateSession(ctx context.Context, sr domain.SessionRequest) (*domain.Session, error)
}

// Saver downloads one tile to disk. Implemented by *fetch.Fetcher.
type Saver interface {
	Save(ctx context.Context, session string, t domain.TileIndex) (string, error)
}

// Runner sequences the session, conversion and download steps.
type Runner struct {
	auth   Authenticator
	saver  Saver
	report status.Reporter
}

// New creates a Runner. A nil reporter discards status lines.
func New(auth Authenticator, saver Saver, report status.Reporter) *Runner {
	if report == nil {
		report = status.Discard
	}
	return &Runner{auth: auth, saver: saver, report: report}
}

// Run creates a session and, only if that succeeds, downloads the tile
// containing p.Location at p.Zoom. The saver is called at most once.
func (r *Runner) Run(ctx context.Context, p Params) (Result, error) {
	session, err := r.auth.CreateSession(ctx, p.Session)
	if err != nil {
		r.report.Fail("failed to create session: %v", err)
		return Result{}, fmt.Errorf("grab.Run: %w", err)
	}
	r.report.OK("session created (expires %s)", expiry(session))

	tile := domain.TileAt(p.Location, p.Zoom)
	r.report.Info("%s at zoom %d → x=%d y=%d", p.Location, p.Zoom, tile.X, tile.Y)
	if b, ok := tile.Bound(); ok {
		r.report.Info("tile spans lat %.5f..%.5f lon %.5f..%.5f", b.Min.Lat(), b.Max.Lat(), b.Min.Lon(), b.Max.Lon())
	}

	adjusted, err := p.Policy.Apply(tile)
	if err != nil {
		r.report.Fail("%v", err)
		return Result{Tile: tile, Session: session}, fmt.Errorf("grab.Run: %w", err)
	}
	if adjusted != tile {
		r.report.Info("%s policy moved tile %s → %s", p.Policy, tile, adjusted)
		tile = adjusted
	}

	path, err := r.saver.Save(ctx, session.Token, tile)
	if err != nil {
		r.report.Fail("failed to download tile %d, %d at zoom %d: %v", tile.X, tile.Y, tile.Zoom, err)
		return Result{Tile: tile, Session: session}, fmt.Errorf("grab.Run: %w", err)
	}
	r.report.OK("downloaded: %s", path)
	return Result{Tile: tile, Session: session, Path: path}, nil
}

// expiry renders the session expiry, which the API sends as Unix seconds.
func expiry(s *domain.Session) string {
	if s.Expiry == "" {
		return "unknown"
	}
	if sec, err := strconv.ParseInt(s.Expiry, 10, 64); err == nil {
		return time.Unix(sec, 0).UTC().Format(time.RFC3339)
	}
	return s.Expiry
}

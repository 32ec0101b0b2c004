// Package fetch downloads a single tile to disk.
package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/naveenspark/tilegrab/pkg/domain"
)

// chunkSize is the copy buffer used when streaming a tile body to disk.
const chunkSize = 1024

// TileGetter streams one tile. Implemented by *client.Client.
type TileGetter interface {
	GetTile(ctx context.Context, session string, t domain.TileIndex) (io.ReadCloser, error)
}

// Fetcher writes tiles into Dir.
type Fetcher struct {
	getter TileGetter
	dir    string
}

// New returns a Fetcher writing into dir.
func New(getter TileGetter, dir string) *Fetcher {
	return &Fetcher{getter: getter, dir: dir}
}

// Dir returns the output directory.
func (f *Fetcher) Dir() string {
	return f.dir
}

// FileName returns the file name a tile is saved under.
func FileName(t domain.TileIndex) string {
	return fmt.Sprintf("tile_%d_%d_%d.jpeg", t.Zoom, t.X, t.Y)
}

// Save downloads t using the session token and returns the written path.
// An existing file for the same tile is overwritten. On any failure the
// returned path is empty and no tile file is left behind.
func (f *Fetcher) Save(ctx context.Context, session string, t domain.TileIndex) (string, error) {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return "", fmt.Errorf("fetch.Save: create output dir: %w", err)
	}

	body, err := f.getter.GetTile(ctx, session, t)
	if err != nil {
		return "", fmt.Errorf("fetch.Save: %w", err)
	}
	defer body.Close() //nolint:errcheck // best-effort close

	tmp, err := os.CreateTemp(f.dir, ".tile-*.part")
	if err != nil {
		return "", fmt.Errorf("fetch.Save: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck // no-op after a successful rename

	// Hide (*os.File).ReadFrom so the copy goes through buf.
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(struct{ io.Writer }{tmp}, body, buf); err != nil {
		tmp.Close() //nolint:errcheck
		return "", fmt.Errorf("fetch.Save %s: write tile: %w", t, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("fetch.Save %s: close tile: %w", t, err)
	}

	path := filepath.Join(f.dir, FileName(t))
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("fetch.Save %s: %w", t, err)
	}
	return path, nil
}

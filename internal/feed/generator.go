package feed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/wooplugin/gswc/internal/catalog"
	"github.com/wooplugin/gswc/internal/settings"
)

var (
	// ErrFeedDisabled: generation was attempted while the feed is turned
	// off. User-recoverable; nothing is mutated.
	ErrFeedDisabled = errors.New("feed is disabled")

	// ErrWriteFailed: the document could not be persisted. The previous
	// feed file and the run record are left untouched.
	ErrWriteFailed = errors.New("failed to write feed file")
)

type Generator struct {
	Settings settings.Store
	Catalog  catalog.Catalog
	Channel  Channel
	Site     Site

	UploadsDir string
	UploadsURL string

	// Now is a test seam; nil means time.Now.
	Now func() time.Time

	mu sync.Mutex
}

type RunResult struct {
	Count int    `json:"count"`
	Path  string `json:"path"`
	URL   string `json:"url"`
}

type Status struct {
	Enabled         bool      `json:"enabled"`
	LastGeneratedAt time.Time `json:"last_generated_at"`
	ProductCount    int       `json:"product_count"`

	FileExists     bool      `json:"file_exists"`
	FileSize       int64     `json:"file_size"`
	FileModifiedAt time.Time `json:"file_modified_at"`

	Path string `json:"path"`
	URL  string `json:"url"`
}

// Generate rebuilds the feed file from scratch: check enabled, ensure the
// output directory, select products, build the document, atomically replace
// the file, then record the run stats. Serialized so overlapping triggers
// cannot interleave; the write itself is a rename, so readers never see a
// torn file either way.
func (g *Generator) Generate(ctx context.Context) (RunResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Channel == nil {
		return RunResult{}, errors.New("generator: channel is nil")
	}

	set, err := LoadSettings(ctx, g.Settings, g.Site)
	if err != nil {
		return RunResult{}, err
	}
	if !set.Enabled {
		return RunResult{}, ErrFeedDisabled
	}

	if err := os.MkdirAll(Dir(g.UploadsDir), 0o755); err != nil {
		return RunResult{}, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	products, err := SelectProducts(ctx, g.Catalog, set)
	if err != nil {
		return RunResult{}, err
	}

	res, err := g.Channel.Build(ctx, products, set)
	if err != nil {
		return RunResult{}, err
	}

	target := Path(g.UploadsDir, g.Channel.Name())
	if err := writeFileAtomic(target, res.XML); err != nil {
		return RunResult{}, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	// Run record is written only after the file is in place, so a failed
	// run keeps the previous run's stats.
	now := g.now()
	if err := g.Settings.Set(ctx, settings.KeyFeedLastGenerated, strconv.FormatInt(now.Unix(), 10)); err != nil {
		return RunResult{}, err
	}
	if err := g.Settings.Set(ctx, settings.KeyFeedProductCount, strconv.Itoa(res.Count)); err != nil {
		return RunResult{}, err
	}

	return RunResult{
		Count: res.Count,
		Path:  target,
		URL:   URL(g.UploadsURL, g.Channel.Name()),
	}, nil
}

// SetEnabled flips the feed on or off. Disabling deletes the feed file and
// resets the run record.
func (g *Generator) SetEnabled(ctx context.Context, enabled bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	value := "no"
	if enabled {
		value = "yes"
	}
	if err := g.Settings.Set(ctx, settings.KeyFeedEnabled, value); err != nil {
		return err
	}

	if enabled {
		return nil
	}

	if g.Channel != nil {
		target := Path(g.UploadsDir, g.Channel.Name())
		if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	if err := g.Settings.Set(ctx, settings.KeyFeedLastGenerated, "0"); err != nil {
		return err
	}
	return g.Settings.Set(ctx, settings.KeyFeedProductCount, "0")
}

func (g *Generator) Status(ctx context.Context) (Status, error) {
	enabled, err := settings.GetDefault(ctx, g.Settings, settings.KeyFeedEnabled)
	if err != nil {
		return Status{}, err
	}
	lastRaw, err := settings.GetDefault(ctx, g.Settings, settings.KeyFeedLastGenerated)
	if err != nil {
		return Status{}, err
	}
	countRaw, err := settings.GetDefault(ctx, g.Settings, settings.KeyFeedProductCount)
	if err != nil {
		return Status{}, err
	}

	st := Status{
		Enabled: enabled == "yes",
	}
	if ts, err := strconv.ParseInt(lastRaw, 10, 64); err == nil && ts > 0 {
		st.LastGeneratedAt = time.Unix(ts, 0).UTC()
	}
	st.ProductCount, _ = strconv.Atoi(countRaw)

	if g.Channel != nil {
		st.Path = Path(g.UploadsDir, g.Channel.Name())
		st.URL = URL(g.UploadsURL, g.Channel.Name())

		if info, err := os.Stat(st.Path); err == nil && !info.IsDir() {
			st.FileExists = true
			st.FileSize = info.Size()
			st.FileModifiedAt = info.ModTime().UTC()
		}
	}

	return st, nil
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now().UTC()
}

// writeFileAtomic writes to a temp file in the target directory and renames
// it into place, so readers only ever see the old document or the new one.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".gswc-feed-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

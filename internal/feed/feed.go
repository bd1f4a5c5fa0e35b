package feed

import (
	"context"

	"github.com/wooplugin/gswc/internal/domain"
)

type BuildResult struct {
	// XML is the complete serialized feed document.
	XML []byte

	// Count is the number of item elements emitted (variable products
	// expand into variants; the parent itself is never counted).
	Count int
}

// Channel turns a selected product sequence into one feed document. The
// feed file for a channel lives at {uploads}/gswc-feeds/{name}-feed.xml.
type Channel interface {
	Name() string
	Build(ctx context.Context, products []domain.Product, set Settings) (BuildResult, error)
}

type Registry struct {
	byName map[string]Channel
}

func NewRegistry(chans ...Channel) Registry {
	m := make(map[string]Channel, len(chans))
	for _, c := range chans {
		if c == nil {
			continue
		}
		m[c.Name()] = c
	}
	return Registry{byName: m}
}

func (r Registry) Get(name string) (Channel, bool) {
	if r.byName == nil {
		return nil, false
	}
	c, ok := r.byName[name]
	return c, ok
}

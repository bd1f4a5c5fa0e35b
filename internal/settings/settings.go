package settings

import "context"

// Store is the persisted key-value settings surface. Values are strings;
// typed views are built on top (see feed.LoadSettings).
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
}

// GetDefault returns the stored value, or the definition default when the
// key has never been set.
func GetDefault(ctx context.Context, s Store, key string) (string, error) {
	v, ok, err := s.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if ok {
		return v, nil
	}
	if def, found := Lookup(key); found {
		return def.Default, nil
	}
	return "", nil
}

package cache

import "context"

// NullStore is a no-op store that never keeps anything.
// It backs the cache when caching is disabled.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() Store {
	return &NullStore{}
}

// Get always returns a miss.
func (s *NullStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (s *NullStore) Set(ctx context.Context, key string, data []byte) error {
	return nil
}

// Delete does nothing.
func (s *NullStore) Delete(ctx context.Context, key string) error {
	return nil
}

// Stats reports an empty store.
func (s *NullStore) Stats(ctx context.Context) (Stats, error) {
	return Stats{Backend: "none"}, nil
}

// Clear does nothing.
func (s *NullStore) Clear(ctx context.Context) error {
	return nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)

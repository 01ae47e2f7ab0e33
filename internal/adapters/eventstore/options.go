package eventstore

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithInitialCapacity sets the slice capacity pre-allocated per category.
func WithInitialCapacity(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.initialCapacity = n
		}
	}
}

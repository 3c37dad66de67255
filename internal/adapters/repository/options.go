package repository

// DefaultCapacity is the number of documents kept when no option overrides it.
const DefaultCapacity = 1024

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithCapacity bounds the number of documents kept; the least recently
// stored document is evicted first.
func WithCapacity(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

package repository

// Option applies a configuration option to the CatalogStore.
type Option func(*CatalogStore)

// WithSuggestionLimit caps how many near-miss names Suggest returns.
func WithSuggestionLimit(n int) Option {
	return func(s *CatalogStore) {
		if n > 0 {
			s.suggestionLimit = n
		}
	}
}

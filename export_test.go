package pgdbc

// WithDriverName overrides the SQL driver name Connect dials with, letting
// tests route the dial through a registered test driver.
func WithDriverName(name string) Option {
	return func(s *settings) {
		s.driver = name
	}
}

// MaxOpenConns exposes the pool limit of a connected handle.
func MaxOpenConns(h *Handle) int {
	return h.db.Stats().MaxOpenConnections
}

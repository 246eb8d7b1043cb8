package store

import "deyimci/internal/platform/logger"

// Option adjusts the Store before backends are dialed
type Option func(*Store) error

// WithLogger routes subclient and tracer output through log
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

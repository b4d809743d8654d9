package recurrence

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// Config controls expansion defaults and limits
type Config struct {
	// DefaultWindowDays is used when a pattern has no end date
	DefaultWindowDays int
	// DefaultCapacity is used when an entry or pattern has no capacity
	DefaultCapacity int
	// MaxOccurrences caps the number of instances produced by one expansion
	MaxOccurrences int
}

// DefaultConfig returns the documented defaults
func DefaultConfig() Config {
	return Config{
		DefaultWindowDays: domain.DefaultWindowDays,
		DefaultCapacity:   domain.DefaultCapacity,
		MaxOccurrences:    domain.DefaultMaxOccurrences,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DefaultWindowDays <= 0 {
		c.DefaultWindowDays = d.DefaultWindowDays
	}
	if c.DefaultCapacity <= 0 {
		c.DefaultCapacity = d.DefaultCapacity
	}
	if c.MaxOccurrences <= 0 {
		c.MaxOccurrences = d.MaxOccurrences
	}
	return c
}

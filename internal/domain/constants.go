package domain

// Expansion defaults applied when a schedule description omits a field
const (
	DefaultCapacity       = 20
	DefaultWindowDays     = 90
	DefaultInterval       = 1
	DefaultStartHour      = 9
	DefaultStartMinute    = 0
	DefaultEndHour        = 17
	DefaultEndMinute      = 0
	DefaultMaxOccurrences = 5000
)

// Default fixed-date times
const (
	DefaultStartTime = "09:00"
	DefaultEndTime   = "17:00"
)

// Business validation constants
const (
	MinCapacity       = 1
	MaxCapacity       = 10000
	MaxInterval       = 365
	MaxFixedDates     = 1000
	MaxBlackoutDates  = 1000
	MaxWindowDays     = 730 // 2 years
	MaxBlackoutReason = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

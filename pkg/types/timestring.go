package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const timeLayout = "15:04"

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("types: invalid time string, expected HH:MM")

// TimeString время суток в формате HH:MM без привязки к дате
type TimeString string

// NewTimeString создает TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку HH:MM
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// String возвращает строковое представление
func (ts TimeString) String() string {
	return string(ts)
}

// Clock возвращает часы и минуты
func (ts TimeString) Clock() (hour, minute int, err error) {
	t, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return t.Hour(), t.Minute(), nil
}

// Minutes возвращает количество минут с начала суток
func (ts TimeString) Minutes() (int, error) {
	h, m, err := ts.Clock()
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// IsAfter сравнивает время; некорректные значения никогда не бывают позже
func (ts TimeString) IsAfter(other TimeString) bool {
	a, errA := ts.Minutes()
	b, errB := other.Minutes()
	return errA == nil && errB == nil && a > b
}

// On применяет время суток к календарной дате (в её часовом поясе)
func (ts TimeString) On(date time.Time) (time.Time, error) {
	h, m, err := ts.Clock()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location()), nil
}

// Value реализует driver.Valuer
func (ts TimeString) Value() (driver.Value, error) {
	return string(ts), nil
}

// Scan реализует sql.Scanner (поддерживает TIME и TEXT колонки)
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return ts.parseDB(v)
	case []byte:
		return ts.parseDB(string(v))
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case nil:
		*ts = ""
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

// parseDB понимает как HH:MM, так и HH:MM:SS из PostgreSQL
func (ts *TimeString) parseDB(s string) error {
	if t, err := time.Parse("15:04:05", s); err == nil {
		*ts = NewTimeString(t)
		return nil
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeLayout формат времени суток HH:MM (24 часа)
const TimeLayout = "15:04"

// ErrInvalidTimeOfDay возвращается при некорректном времени суток
var ErrInvalidTimeOfDay = errors.New("types: invalid time of day, expected HH:MM")

// TimeOfDay время суток (часы и минуты) без даты и часового пояса
// Строка "HH:MM" парсится один раз на границе и дальше не используется
type TimeOfDay struct {
	hour   int
	minute int
}

// NewTimeOfDay создает время суток с проверкой диапазонов
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %02d:%02d out of range", ErrInvalidTimeOfDay, hour, minute)
	}
	return TimeOfDay{hour: hour, minute: minute}, nil
}

// ParseTimeOfDay парсит строку строго в формате HH:MM
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != len(TimeLayout) || s[2] != ':' {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return TimeOfDay{hour: t.Hour(), minute: t.Minute()}, nil
}

// MustParseTimeOfDay как ParseTimeOfDay, но паникует при ошибке
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) Hour() int   { return t.hour }
func (t TimeOfDay) Minute() int { return t.minute }

// Minutes возвращает количество минут от полуночи
func (t TimeOfDay) Minutes() int {
	return t.hour*60 + t.minute
}

func (t TimeOfDay) IsBefore(other TimeOfDay) bool { return t.Minutes() < other.Minutes() }

// String возвращает время в формате HH:MM
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// MarshalJSON сериализует как строку "HH:MM"
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON принимает только строку "HH:MM"
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeOfDay, err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value сохраняет значение в колонку типа TIME
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan читает значение из колонки типа TIME
// lib/pq отдает TIME как time.Time, другие драйверы как строку "HH:MM:SS"
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = TimeOfDay{hour: v.Hour(), minute: v.Minute()}
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	case nil:
		return fmt.Errorf("%w: NULL", ErrInvalidTimeOfDay)
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeOfDay, src)
	}
}

func (t *TimeOfDay) scanString(s string) error {
	s = strings.TrimSpace(s)
	if len(s) > len(TimeLayout) {
		// "09:30:00" -> "09:30"
		s = s[:len(TimeLayout)]
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Package timeslot содержит арифметику 30-минутных слотов в часовом поясе бизнеса.
package timeslot

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

var (
	// ErrInvalidDayKey возвращается для ключа дня не в формате YYYY-MM-DD
	ErrInvalidDayKey = errors.New("timeslot: invalid day key")

	// ErrInvalidRange возвращается, когда конец диапазона не позже начала
	ErrInvalidRange = errors.New("timeslot: end must be after start")
)

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Clock привязывает все вычисления к одному часовому поясу
type Clock struct {
	loc          *time.Location
	timeProvider TimeProvider
}

// NewClock загружает часовой пояс по имени IANA (пустая строка = America/New_York)
func NewClock(timezone string, tp TimeProvider) (*Clock, error) {
	if timezone == "" {
		timezone = domain.DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("timeslot: load location %q: %w", timezone, err)
	}
	if tp == nil {
		tp = &RealTimeProvider{}
	}
	return &Clock{loc: loc, timeProvider: tp}, nil
}

// Location часовой пояс бизнеса
func (c *Clock) Location() *time.Location {
	return c.loc
}

// Now текущий момент в часовом поясе бизнеса
func (c *Clock) Now() time.Time {
	return c.timeProvider.Now().In(c.loc)
}

// FormatDayKey ключ дня YYYY-MM-DD для t в часовом поясе бизнеса
func (c *Clock) FormatDayKey(t time.Time) string {
	return t.In(c.loc).Format(domain.DateFormat)
}

// TimeLabel время HH:MM для t в часовом поясе бизнеса
func (c *Clock) TimeLabel(t time.Time) types.TimeString {
	return types.NewTimeString(t.In(c.loc))
}

// ParseSlotTime момент времени для метки HH:MM в указанный календарный день.
// Результат зависит только от аргументов, а не от часового пояса процесса
func (c *Clock) ParseSlotTime(label types.TimeString, dayKey string) (time.Time, error) {
	hour, minute, err := label.Clock()
	if err != nil {
		return time.Time{}, err
	}
	day, err := time.ParseInLocation(domain.DateFormat, dayKey, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDayKey, dayKey)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, c.loc), nil
}

// AreConsecutive true, если соседние слоты отстоят ровно на один слот
func (c *Clock) AreConsecutive(slots []domain.DisplaySlot, dayKey string) bool {
	if len(slots) < 2 {
		return true
	}
	prev, err := c.ParseSlotTime(slots[0].Time, dayKey)
	if err != nil {
		return false
	}
	for _, s := range slots[1:] {
		cur, err := c.ParseSlotTime(s.Time, dayKey)
		if err != nil {
			return false
		}
		if cur.Sub(prev) != domain.SlotDuration {
			return false
		}
		prev = cur
	}
	return true
}

// FormatTimeRanges склеивает идущие подряд слоты в диапазоны вида "9:00 AM - 10:30 AM"
func (c *Clock) FormatTimeRanges(slots []domain.DisplaySlot) []string {
	ranges := make([]string, 0)
	if len(slots) == 0 {
		return ranges
	}

	start := slots[0].AvailableFrom
	end := start.Add(domain.SlotDuration)
	for _, s := range slots[1:] {
		if s.AvailableFrom.Equal(end) {
			end = end.Add(domain.SlotDuration)
			continue
		}
		ranges = append(ranges, c.formatRange(start, end))
		start = s.AvailableFrom
		end = start.Add(domain.SlotDuration)
	}
	return append(ranges, c.formatRange(start, end))
}

func (c *Clock) formatRange(start, end time.Time) string {
	return start.In(c.loc).Format(domain.DisplayTimeFormat) + " - " + end.In(c.loc).Format(domain.DisplayTimeFormat)
}

// SplitRange режет [start, end) на 30-минутные слоты. Хвост короче слота отбрасывается
func (c *Clock) SplitRange(start, end time.Time) ([]time.Time, error) {
	if !end.After(start) {
		return nil, ErrInvalidRange
	}
	chunks := make([]time.Time, 0, int(end.Sub(start)/domain.SlotDuration))
	for t := start; !t.Add(domain.SlotDuration).After(end); t = t.Add(domain.SlotDuration) {
		chunks = append(chunks, t.UTC())
	}
	return chunks, nil
}

// Project проекция слота для отображения
func (c *Clock) Project(s domain.AvailabilitySlot) domain.DisplaySlot {
	return domain.DisplaySlot{
		ID:            s.ID,
		AvailableFrom: s.AvailableFrom,
		Day:           c.FormatDayKey(s.AvailableFrom),
		Time:          c.TimeLabel(s.AvailableFrom),
		ServiceType:   s.ServiceType,
	}
}

package schedule_webinar

import "time"

// Request модель запроса на создание вебинара с расписанием
type Request struct {
	UserID          string
	OwnerID         string
	Title           string
	AnchorDate      time.Time // Дата, от которой строится расписание
	StartTime       string    // Локальное время начала каждой сессии (HH:MM)
	DurationMinutes int
	Timezone        *string // По умолчанию часовой пояс владельца
	PriceCents      int64

	// Правило повторения
	Frequency string     // daily | weekly
	Interval  int        // Каждые N дней/недель (по умолчанию 1)
	ByWeekday []int      // 0-6, воскресенье = 0; для weekly
	Count     int        // Количество сессий
	Until     *time.Time // Последняя дата (включительно)
}

// Response модель ответа с вебинаром и сгенерированными сессиями
type Response struct {
	WebinarID string
	OwnerID   string
	Title     string
	Timezone  string
	Sessions  []Occurrence
}

// Occurrence сессия вебинара
type Occurrence struct {
	SessionID string
	LocalDate time.Time
	StartUTC  time.Time
	EndUTC    time.Time
}

package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID          string    // ID клиента, который бронирует
	OwnerID         string    // ID владельца расписания
	Date            time.Time // Локальная дата начала (без времени)
	StartTime       string    // Локальное время начала (HH:MM)
	Timezone        *string   // Часовой пояс Date/StartTime (по умолчанию часовой пояс владельца)
	DurationMinutes *int      // Длительность (по умолчанию длительность слота окна)
	PaymentID       *string   // ID платежа в PaymentService (опционально)
	PaidAmountCents int64     // Оплаченная сумма в центах
}

// Response модель ответа с созданной сессией
type Response struct {
	ID              string
	OwnerID         string
	ClientID        string
	StartUTC        time.Time
	EndUTC          time.Time
	DurationMinutes int
	Status          domain.SessionStatus
	PaymentID       *string
	PaidAmountCents int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func toResponse(s *domain.Session) *Response {
	return &Response{
		ID:              s.ID,
		OwnerID:         s.OwnerID,
		ClientID:        s.ClientID,
		StartUTC:        s.StartUTC,
		EndUTC:          s.EndUTC,
		DurationMinutes: int(s.Duration() / time.Minute),
		Status:          s.Status,
		PaymentID:       s.PaymentID,
		PaidAmountCents: s.PaidAmountCents,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

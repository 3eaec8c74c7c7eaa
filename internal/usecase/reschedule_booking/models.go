package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на перенос сессии
type Request struct {
	UserID    string    // ID пользователя (владелец или клиент сессии)
	SessionID string    // ID переносимой сессии
	Date      time.Time // Новая локальная дата начала
	StartTime string    // Новое локальное время начала (HH:MM)
	Timezone  *string   // Часовой пояс Date/StartTime (по умолчанию часовой пояс владельца)
}

// Response модель ответа с перенесенной сессией
type Response struct {
	ID               string
	OwnerID          string
	ClientID         string
	StartUTC         time.Time
	EndUTC           time.Time
	PreviousStartUTC time.Time
	DurationMinutes  int
	Status           domain.SessionStatus
}

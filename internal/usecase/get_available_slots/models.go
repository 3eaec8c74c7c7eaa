package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	OwnerID       string    // ID владельца расписания
	Date          time.Time // Календарная дата (без времени)
	OnlyAvailable bool      // Вернуть только свободные слоты
}

// Response модель ответа со списком слотов
type Response struct {
	Date     time.Time // Дата, на которую запрашивались слоты
	OwnerID  string    // ID владельца
	Timezone string    // Часовой пояс владельца
	Slots    []Slot    // Слоты, отсортированные по времени начала
}

// Slot модель временного слота
type Slot struct {
	StartUTC        time.Time
	EndUTC          time.Time
	LocalStartTime  string // Время начала в часовом поясе владельца (HH:MM)
	DurationMinutes int
	Available       bool
}

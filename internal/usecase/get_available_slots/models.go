package get_available_slots

import (
	"time"

	"github.com/anireserve/booking-service/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ProfessionalID int64     // ID профессионала
	ServiceID      *int64    // ID услуги (опционально, без услуги - почасовое бронирование)
	Date           time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date           time.Time // Дата, на которую запрашивались слоты
	ProfessionalID int64     // ID профессионала
	ServiceID      *int64    // ID услуги (если указана)
	Slots          []Slot    // Список доступных слотов
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность слота в минутах
}

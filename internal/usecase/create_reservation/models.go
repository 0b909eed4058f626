package create_reservation

import (
	"time"

	"github.com/anireserve/booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID       int64            // ID клиента
	ProfessionalID int64            // ID профессионала
	ServiceID      *int64           // ID услуги (опционально, без услуги - почасовое бронирование)
	Date           time.Time        // Дата бронирования (без времени)
	StartTime      types.TimeString // Время начала слота (например, "10:00")
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	ClientID        int64            // ID клиента
	ProfessionalID  int64            // ID профессионала
	ServiceID       *int64           // ID услуги (если указана)
	ReservationDate time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	TotalPrice      float64          // Итоговая цена
	Status          string           // Статус бронирования

	// Денормализованные данные услуги
	ServiceName *string

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

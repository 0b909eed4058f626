package notifier

// EventKind тип события жизненного цикла бронирования
type EventKind string

const (
	EventCreated   EventKind = "created"
	EventConfirmed EventKind = "confirmed"
	EventRejected  EventKind = "rejected"
	EventCancelled EventKind = "cancelled"
	EventCompleted EventKind = "completed"
)

// RecipientKind получатель уведомления
type RecipientKind string

const (
	RecipientClient       RecipientKind = "client"
	RecipientProfessional RecipientKind = "professional"
)

// Event уведомление о событии бронирования
type Event struct {
	Kind            EventKind     `json:"kind"`
	Recipient       RecipientKind `json:"recipient"`
	ReservationID   int64         `json:"reservation_id"`
	ProfessionalID  int64         `json:"professional_id"`
	ClientID        int64         `json:"client_id"`
	ReservationDate string        `json:"reservation_date"` // YYYY-MM-DD
	StartTime       string        `json:"start_time"`       // HH:MM
	Reason          *string       `json:"reason,omitempty"`
}

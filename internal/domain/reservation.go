package domain

import (
	"time"

	"github.com/anireserve/booking-service/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusRejected  ReservationStatus = "rejected"
)

// Reservation represents a client appointment with a professional
type Reservation struct {
	ID              int64
	ProfessionalID  int64
	ClientID        int64
	ServiceID       *int64 // nil = бронирование без привязки к услуге (почасовая ставка)
	ReservationDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	TotalPrice      float64
	Status          ReservationStatus

	// Денормализованные данные услуги для истории
	ServiceName *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime возвращает время окончания бронирования
func (r *Reservation) EndTime() (types.TimeString, error) {
	return r.StartTime.AddMinutes(r.DurationMinutes)
}

// Blocks returns true if the reservation occupies its time slot
// Отмененные и отклоненные бронирования слот не занимают
func (r *Reservation) Blocks() bool {
	return r.Status == StatusPending ||
		r.Status == StatusConfirmed ||
		r.Status == StatusCompleted
}

// IsTerminal returns true if the reservation is in a terminal state
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCompleted ||
		r.Status == StatusCancelled ||
		r.Status == StatusRejected
}

// CanBeCancelled returns true if the reservation can still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsReviewable returns true if the reservation is eligible for a review
func (r *Reservation) IsReviewable() bool {
	return r.Status == StatusCompleted
}

// ProfessionalReservationsFilter фильтр для получения бронирований профессионала
type ProfessionalReservationsFilter struct {
	ProfessionalID  int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отмененные и отклоненные бронирования
}

package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition возвращается при недопустимом переходе статуса бронирования
var ErrInvalidTransition = errors.New("invalid reservation status transition")

// reservationTransitions допустимые переходы жизненного цикла бронирования
//
//	pending   -> confirmed | rejected | cancelled
//	confirmed -> completed | cancelled
//	completed, cancelled, rejected - терминальные статусы
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition проверяет допустимость перехода из статуса from в статус to
func CanTransition(from, to ReservationStatus) bool {
	for _, allowed := range reservationTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateTransition возвращает ErrInvalidTransition, если переход недопустим
func ValidateTransition(from, to ReservationStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// ValidStatus проверяет, что статус является одним из известных
func ValidStatus(s ReservationStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusRejected:
		return true
	default:
		return false
	}
}

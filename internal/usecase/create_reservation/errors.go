package create_reservation

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда профессионал не найден
	ErrProfessionalNotFound = errors.New("create_reservation: professional not found")

	// ErrProfessionalInactive возвращается, когда профессионал не принимает бронирования
	ErrProfessionalInactive = errors.New("create_reservation: professional is not accepting reservations")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_reservation: service not found")

	// ErrInvalidService возвращается, когда услуга имеет некорректную длительность
	ErrInvalidService = errors.New("create_reservation: service has invalid duration")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_reservation: date is too far in the future")

	// ErrSlotNotAvailable возвращается, когда выбранный слот недоступен
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда время не соответствует сетке слотов или вне рабочего окна
	ErrInvalidTimeSlot = errors.New("create_reservation: invalid time slot")

	// ErrTooLateToBook возвращается, когда бронирование нарушает minNoticeMinutes
	ErrTooLateToBook = errors.New("create_reservation: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

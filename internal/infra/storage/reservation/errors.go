package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotConflict возвращается при нарушении exclusion-констрейнта пересечения интервалов
	// Означает, что слот уже занят конкурирующим бронированием
	ErrSlotConflict = errors.New("reservation.repository: slot conflict")

	// ErrStatusConflict возвращается, когда статус бронирования изменился конкурентно
	// и условное обновление не затронуло ни одной строки
	ErrStatusConflict = errors.New("reservation.repository: status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)

package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anireserve/booking-service/internal/domain"
	reservationRepo "github.com/anireserve/booking-service/internal/infra/storage/reservation"
	"github.com/anireserve/booking-service/internal/integrations/notifier"
	"github.com/anireserve/booking-service/internal/service/reservations/models"
	"github.com/anireserve/booking-service/pkg/types"
)

// Фейки для зависимостей сервиса

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation

	updateStatusErr error
	cancelErr       error

	updatedTo   domain.ReservationStatus
	cancelledID int64
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeReservationRepo) GetByClientID(_ context.Context, clientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if r.ClientID != clientID {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeReservationRepo) GetByProfessionalWithFilter(_ context.Context, filter domain.ProfessionalReservationsFilter) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if r.ProfessionalID != filter.ProfessionalID {
			continue
		}
		if !filter.IncludeInactive && !r.Blocks() {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id int64, from, to domain.ReservationStatus) error {
	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}
	f.updatedTo = to
	return nil
}

func (f *fakeReservationRepo) Cancel(_ context.Context, id int64, from domain.ReservationStatus, reason string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelledID = id
	return nil
}

type fakeNotifier struct {
	events  []*notifier.Event
	sendErr error
}

func (f *fakeNotifier) Send(_ context.Context, event *notifier.Event) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.events = append(f.events, event)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newReservation(id int64, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		ClientID:        10,
		ProfessionalID:  20,
		ReservationDate: time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          status,
	}
}

func newTestService(repo *fakeReservationRepo, notify *fakeNotifier) *Service {
	return NewService(repo, notify, nopLogger{})
}

func TestGetByID(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: newReservation(1, domain.StatusPending),
	}}
	svc := newTestService(repo, &fakeNotifier{})

	t.Run("ClientSeesOwnReservation", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "11:00", resp.EndTime)
	})

	t.Run("ProfessionalSeesOwnReservation", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("StrangerIsDenied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 99)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 404, 10)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestGetClientReservations(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: newReservation(1, domain.StatusPending),
		2: newReservation(2, domain.StatusCancelled),
	}}
	svc := newTestService(repo, &fakeNotifier{})

	t.Run("AllStatuses", func(t *testing.T) {
		resp, err := svc.GetClientReservations(context.Background(), &models.GetClientReservationsRequest{ClientID: 10})
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 2)
	})

	t.Run("StatusFilter", func(t *testing.T) {
		status := "pending"
		resp, err := svc.GetClientReservations(context.Background(), &models.GetClientReservationsRequest{
			ClientID: 10,
			Status:   &status,
		})
		require.NoError(t, err)
		require.Len(t, resp.Reservations, 1)
		assert.Equal(t, "pending", resp.Reservations[0].Status)
	})

	t.Run("UnknownStatusRejected", func(t *testing.T) {
		status := "archived"
		_, err := svc.GetClientReservations(context.Background(), &models.GetClientReservationsRequest{
			ClientID: 10,
			Status:   &status,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetProfessionalReservations(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: newReservation(1, domain.StatusConfirmed),
	}}
	svc := newTestService(repo, &fakeNotifier{})

	t.Run("OwnerAllowed", func(t *testing.T) {
		resp, err := svc.GetProfessionalReservations(context.Background(), &models.GetProfessionalReservationsRequest{
			UserID:         20,
			ProfessionalID: 20,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 1)
	})

	t.Run("NonOwnerDenied", func(t *testing.T) {
		_, err := svc.GetProfessionalReservations(context.Background(), &models.GetProfessionalReservationsRequest{
			UserID:         10,
			ProfessionalID: 20,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestUpdateStatus(t *testing.T) {
	newFixture := func(status domain.ReservationStatus) (*fakeReservationRepo, *fakeNotifier, *Service) {
		repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
			1: newReservation(1, status),
		}}
		notify := &fakeNotifier{}
		return repo, notify, newTestService(repo, notify)
	}

	t.Run("ProfessionalConfirmsPending", func(t *testing.T) {
		repo, notify, svc := newFixture(domain.StatusPending)

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 20, Status: "confirmed"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, repo.updatedTo)

		require.Len(t, notify.events, 1)
		assert.Equal(t, notifier.EventConfirmed, notify.events[0].Kind)
		assert.Equal(t, notifier.RecipientClient, notify.events[0].Recipient)
	})

	t.Run("ProfessionalRejectsPending", func(t *testing.T) {
		repo, _, svc := newFixture(domain.StatusPending)

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 20, Status: "rejected"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, repo.updatedTo)
	})

	t.Run("ProfessionalCompletesConfirmed", func(t *testing.T) {
		repo, _, svc := newFixture(domain.StatusConfirmed)

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 20, Status: "completed"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, repo.updatedTo)
	})

	t.Run("ClientCannotUpdateStatus", func(t *testing.T) {
		_, _, svc := newFixture(domain.StatusPending)

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 10, Status: "confirmed"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("CancellationGoesThroughCancelOperation", func(t *testing.T) {
		_, _, svc := newFixture(domain.StatusPending)

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 20, Status: "cancelled"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("UnknownStatusRejected", func(t *testing.T) {
		_, _, svc := newFixture(domain.StatusPending)

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 20, Status: "archived"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("ForbiddenTransition", func(t *testing.T) {
		_, _, svc := newFixture(domain.StatusCompleted)

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 20, Status: "confirmed"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("ConcurrentChangeReturnsTransitionError", func(t *testing.T) {
		repo, _, svc := newFixture(domain.StatusPending)
		repo.updateStatusErr = reservationRepo.ErrStatusConflict

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 20, Status: "confirmed"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("NotificationFailureDoesNotFailUpdate", func(t *testing.T) {
		_, notify, svc := newFixture(domain.StatusPending)
		notify.sendErr = errors.New("notify service is down")

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 20, Status: "confirmed"})
		require.NoError(t, err)
	})
}

func TestCancel(t *testing.T) {
	newFixture := func(status domain.ReservationStatus) (*fakeReservationRepo, *fakeNotifier, *Service) {
		repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
			1: newReservation(1, status),
		}}
		notify := &fakeNotifier{}
		return repo, notify, newTestService(repo, notify)
	}

	t.Run("ClientCancelsNotifiesProfessional", func(t *testing.T) {
		repo, notify, svc := newFixture(domain.StatusPending)

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
			UserID:             10,
			CancellationReason: "не смогу прийти",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), repo.cancelledID)

		require.Len(t, notify.events, 1)
		assert.Equal(t, notifier.EventCancelled, notify.events[0].Kind)
		assert.Equal(t, notifier.RecipientProfessional, notify.events[0].Recipient)
		require.NotNil(t, notify.events[0].Reason)
		assert.Equal(t, "не смогу прийти", *notify.events[0].Reason)
	})

	t.Run("ProfessionalCancelsNotifiesClient", func(t *testing.T) {
		_, notify, svc := newFixture(domain.StatusConfirmed)

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: 20})
		require.NoError(t, err)

		require.Len(t, notify.events, 1)
		assert.Equal(t, notifier.RecipientClient, notify.events[0].Recipient)
		assert.Nil(t, notify.events[0].Reason)
	})

	t.Run("StrangerIsDenied", func(t *testing.T) {
		_, _, svc := newFixture(domain.StatusPending)

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: 99})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("TerminalStatusCannotBeCancelled", func(t *testing.T) {
		for _, status := range []domain.ReservationStatus{domain.StatusCompleted, domain.StatusCancelled, domain.StatusRejected} {
			_, _, svc := newFixture(status)
			err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: 10})
			assert.ErrorIs(t, err, ErrCannotCancel, "status %s", status)
		}
	})

	t.Run("ReasonTooLong", func(t *testing.T) {
		_, _, svc := newFixture(domain.StatusPending)

		longReason := make([]byte, domain.MaxCancellationReason+1)
		for i := range longReason {
			longReason[i] = 'a'
		}

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
			UserID:             10,
			CancellationReason: string(longReason),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("ConcurrentChangeReturnsCannotCancel", func(t *testing.T) {
		repo, _, svc := newFixture(domain.StatusPending)
		repo.cancelErr = reservationRepo.ErrStatusConflict

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: 10})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})
}

package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anireserve/booking-service/internal/domain"
	reservationRepo "github.com/anireserve/booking-service/internal/infra/storage/reservation"
	settingsRepo "github.com/anireserve/booking-service/internal/infra/storage/settings"
	"github.com/anireserve/booking-service/internal/integrations/notifier"
	"github.com/anireserve/booking-service/internal/integrations/proservice"
	"github.com/anireserve/booking-service/pkg/ptr"
	"github.com/anireserve/booking-service/pkg/types"
)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	createErrs   []error // Ошибки на последовательные вызовы Create
	createCalls  int
	created      *domain.Reservation
}

func (f *fakeReservationRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	f.createCalls++
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	created := *r
	created.ID = 100
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeReservationRepo) GetByProfessionalWithFilter(_ context.Context, _ domain.ProfessionalReservationsFilter) ([]*domain.Reservation, error) {
	return f.reservations, nil
}

type fakeScheduleRepo struct {
	rules   []*domain.AvailabilityRule
	blocked []*domain.BlockedPeriod
}

func (f *fakeScheduleRepo) GetRulesByProfessional(_ context.Context, _ int64) ([]*domain.AvailabilityRule, error) {
	return f.rules, nil
}

func (f *fakeScheduleRepo) GetBlockedPeriodsForDate(_ context.Context, _ int64, _ time.Time) ([]*domain.BlockedPeriod, error) {
	return f.blocked, nil
}

type fakeSettingsRepo struct {
	settings *domain.SlotSettings
}

func (f *fakeSettingsRepo) GetByProfessional(_ context.Context, professionalID int64) (*domain.SlotSettings, error) {
	if f.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return f.settings, nil
}

type fakeProClient struct {
	professional *proservice.Professional
	service      *proservice.Service
}

func (f *fakeProClient) GetProfessional(_ context.Context, _ int64) (*proservice.Professional, error) {
	if f.professional == nil {
		return nil, proservice.ErrProfessionalNotFound
	}
	return f.professional, nil
}

func (f *fakeProClient) GetService(_ context.Context, _, _ int64) (*proservice.Service, error) {
	if f.service == nil {
		return nil, proservice.ErrServiceNotFound
	}
	return f.service, nil
}

type fakeNotifier struct {
	events  []*notifier.Event
	sendErr error
}

func (f *fakeNotifier) Send(_ context.Context, event *notifier.Event) error {
	f.events = append(f.events, event)
	return f.sendErr
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc        *UseCase
	resRepo   *fakeReservationRepo
	schedRepo *fakeScheduleRepo
	setRepo   *fakeSettingsRepo
	pro       *fakeProClient
	notify    *fakeNotifier
	tx        *fakeTxManager
}

func newFixture() *fixture {
	f := &fixture{
		resRepo:   &fakeReservationRepo{},
		schedRepo: &fakeScheduleRepo{},
		setRepo:   &fakeSettingsRepo{},
		pro: &fakeProClient{
			professional: &proservice.Professional{ID: 1, DisplayName: "Dana", HourlyRate: 80, IsActive: true},
		},
		notify: &fakeNotifier{},
		tx:     &fakeTxManager{},
	}

	f.uc = NewUseCase(f.resRepo, f.schedRepo, f.setRepo, f.pro, f.notify, f.tx, nopLogger{})
	f.uc.timeProvider = &fakeTimeProvider{now: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}
	return f
}

// Воскресенье, попадает в расписание по умолчанию
var testDate = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)

func validRequest() *Request {
	return &Request{
		ClientID:       42,
		ProfessionalID: 1,
		Date:           testDate,
		StartTime:      types.TimeString("10:00"),
	}
}

func TestExecuteCreatesPendingReservation(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, domain.DefaultServiceDurationMinutes, resp.DurationMinutes)

	// Почасовое бронирование по ставке профессионала
	assert.Equal(t, 80.0, resp.TotalPrice)
	assert.Nil(t, resp.ServiceName)
	assert.Equal(t, 1, f.tx.calls)
}

func TestExecuteWithService(t *testing.T) {
	t.Run("FixedPriceAndDuration", func(t *testing.T) {
		f := newFixture()
		f.pro.service = &proservice.Service{
			ID: 7, ProfessionalID: 1, Name: "Consultation", DurationMinutes: 90, Price: ptr.Ptr(150.0),
		}

		req := validRequest()
		req.ServiceID = ptr.Ptr(int64(7))
		req.StartTime = types.TimeString("10:00")

		resp, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, 90, resp.DurationMinutes)
		assert.Equal(t, 150.0, resp.TotalPrice)
		require.NotNil(t, resp.ServiceName)
		assert.Equal(t, "Consultation", *resp.ServiceName)
	})

	t.Run("NoPriceFallsBackToHourlyRate", func(t *testing.T) {
		f := newFixture()
		f.pro.service = &proservice.Service{
			ID: 7, ProfessionalID: 1, Name: "Walk", DurationMinutes: 30,
		}
		// Шаг сетки 30 минут, чтобы слот 10:00 был выровнен
		f.setRepo.settings = &domain.SlotSettings{
			ProfessionalID:         1,
			SlotGranularityMinutes: 30,
		}

		req := validRequest()
		req.ServiceID = ptr.Ptr(int64(7))

		resp, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)

		// 80/час за 30 минут
		assert.Equal(t, 40.0, resp.TotalPrice)
	})

	t.Run("ServiceNotFound", func(t *testing.T) {
		f := newFixture()

		req := validRequest()
		req.ServiceID = ptr.Ptr(int64(99))

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("ZeroDurationRejected", func(t *testing.T) {
		f := newFixture()
		f.pro.service = &proservice.Service{ID: 7, ProfessionalID: 1, Name: "Broken", DurationMinutes: 0}

		req := validRequest()
		req.ServiceID = ptr.Ptr(int64(7))

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidService)
	})
}

func TestExecuteProfessionalChecks(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		f := newFixture()
		f.pro.professional = nil

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrProfessionalNotFound)
	})

	t.Run("Inactive", func(t *testing.T) {
		f := newFixture()
		f.pro.professional.IsActive = false

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrProfessionalInactive)
	})
}

func TestExecuteSlotValidation(t *testing.T) {
	t.Run("PastDate", func(t *testing.T) {
		f := newFixture()

		req := validRequest()
		req.Date = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("DayOffInDefaultSchedule", func(t *testing.T) {
		f := newFixture()

		// Пятница - выходной в расписании по умолчанию
		req := validRequest()
		req.Date = time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("OutsideWorkingWindow", func(t *testing.T) {
		f := newFixture()

		req := validRequest()
		req.StartTime = types.TimeString("08:00")

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("MisalignedStartTime", func(t *testing.T) {
		f := newFixture()

		req := validRequest()
		req.StartTime = types.TimeString("10:15")

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("OverlapsBreak", func(t *testing.T) {
		f := newFixture()
		f.schedRepo.rules = []*domain.AvailabilityRule{
			{
				ProfessionalID: 1,
				DayOfWeek:      int(time.Sunday),
				IsAvailable:    true,
				StartTime:      types.TimeString("09:00"),
				EndTime:        types.TimeString("18:00"),
				Breaks: []domain.Break{
					{StartTime: types.TimeString("13:00"), EndTime: types.TimeString("14:00")},
				},
			},
		}

		req := validRequest()
		req.StartTime = types.TimeString("13:00")

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("BlockedDate", func(t *testing.T) {
		f := newFixture()
		f.schedRepo.blocked = []*domain.BlockedPeriod{
			{ProfessionalID: 1, StartDate: testDate, EndDate: testDate},
		}

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("TooLateToBookToday", func(t *testing.T) {
		f := newFixture()
		f.uc.timeProvider = &fakeTimeProvider{now: time.Date(2026, 9, 6, 9, 30, 0, 0, time.UTC)}
		f.setRepo.settings = &domain.SlotSettings{
			ProfessionalID:         1,
			SlotGranularityMinutes: 60,
			MinNoticeMinutes:       60,
		}

		// now + 60 минут = 10:30, слот 10:00 уже недоступен
		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrTooLateToBook)
	})

	t.Run("DateBeyondAdvanceLimit", func(t *testing.T) {
		f := newFixture()
		f.setRepo.settings = &domain.SlotSettings{
			ProfessionalID:         1,
			SlotGranularityMinutes: 60,
			AdvanceBookingDays:     3,
		}

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})
}

func TestExecuteSlotTaken(t *testing.T) {
	f := newFixture()
	f.resRepo.reservations = []*domain.Reservation{
		{
			ID:              5,
			ProfessionalID:  1,
			ClientID:        77,
			StartTime:       types.TimeString("10:00"),
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 0, f.resRepo.createCalls)
}

func TestExecuteInsertConflictRetriesOnce(t *testing.T) {
	t.Run("SecondAttemptSucceeds", func(t *testing.T) {
		f := newFixture()
		f.resRepo.createErrs = []error{reservationRepo.ErrSlotConflict, nil}

		resp, err := f.uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		assert.Equal(t, 2, f.resRepo.createCalls)
		assert.Equal(t, 2, f.tx.calls)
		assert.Equal(t, int64(100), resp.ID)
	})

	t.Run("PersistentConflictReturnsSlotNotAvailable", func(t *testing.T) {
		f := newFixture()
		f.resRepo.createErrs = []error{reservationRepo.ErrSlotConflict, reservationRepo.ErrSlotConflict}

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		assert.Equal(t, 2, f.resRepo.createCalls)
	})
}

func TestExecuteNotification(t *testing.T) {
	t.Run("ProfessionalIsNotified", func(t *testing.T) {
		f := newFixture()

		_, err := f.uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		require.Len(t, f.notify.events, 1)
		event := f.notify.events[0]
		assert.Equal(t, notifier.EventCreated, event.Kind)
		assert.Equal(t, notifier.RecipientProfessional, event.Recipient)
		assert.Equal(t, int64(100), event.ReservationID)
	})

	t.Run("SendFailureDoesNotFailBooking", func(t *testing.T) {
		f := newFixture()
		f.notify.sendErr = context.DeadlineExceeded

		resp, err := f.uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, int64(100), resp.ID)
	})
}

func TestValidateRequest(t *testing.T) {
	t.Run("ClientBookingThemselves", func(t *testing.T) {
		req := validRequest()
		req.ClientID = req.ProfessionalID

		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
	})

	t.Run("BadTimeFormat", func(t *testing.T) {
		req := validRequest()
		req.StartTime = types.TimeString("25:99")

		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
	})

	t.Run("MissingDate", func(t *testing.T) {
		req := validRequest()
		req.Date = time.Time{}

		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
	})
}

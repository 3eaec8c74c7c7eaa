package create_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	sessionStorage "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/session"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const (
	testOwner  = "owner-1"
	testClient = "client-1"
)

var (
	bookingDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	testNow     = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
)

type fakeAvailabilityRepo struct {
	windows []domain.AvailabilityWindow
	dates   []time.Time
}

func (f *fakeAvailabilityRepo) GetActiveByOwnerForDates(_ context.Context, _ string, dates []time.Time) ([]domain.AvailabilityWindow, error) {
	f.dates = dates
	return f.windows, nil
}

type fakeSessionRepo struct {
	sessions  []domain.Session
	createErr error
	created   []domain.Session
}

func (f *fakeSessionRepo) GetActiveByOwnerInRange(_ context.Context, ownerID string, from, to time.Time) ([]domain.Session, error) {
	result := make([]domain.Session, 0)
	for _, s := range f.sessions {
		if s.OwnerID == ownerID && s.IsActive() && s.StartUTC.Before(to) && s.EndUTC.After(from) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeSessionRepo) Create(_ context.Context, s *domain.Session) (*domain.Session, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	s.ID = fmt.Sprintf("s%d", len(f.created)+1)
	f.created = append(f.created, *s)
	return s, nil
}

type fakeTxManager struct {
	err error
}

func (f fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

type staticSettings struct{}

func (staticSettings) Resolve(_ context.Context, ownerID string) (*domain.OwnerSettings, error) {
	return &domain.OwnerSettings{
		OwnerID:                       ownerID,
		Timezone:                      "Australia/Sydney",
		DefaultSessionDurationMinutes: 45,
		MinLeadTimeMinutes:            domain.DefaultMinLeadTimeMinutes,
	}, nil
}

type recordingMetrics struct {
	rejections []string
}

func (m *recordingMetrics) ObserveBookingRejection(reason string) {
	m.rejections = append(m.rejections, reason)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

// sydneyWindow 09:00-12:00 по Сиднею 10 марта 2025 (UTC+11), слоты по 60 минут
func sydneyWindow() domain.AvailabilityWindow {
	return domain.AvailabilityWindow{
		ID:                     "w1",
		OwnerID:                testOwner,
		Date:                   ptr.Ptr(bookingDate),
		StartTime:              types.MustParseTimeOfDay("09:00"),
		EndTime:                types.MustParseTimeOfDay("12:00"),
		Timezone:               "Australia/Sydney",
		SessionDurationMinutes: 60,
		IsActive:               true,
	}
}

type fixture struct {
	uc           *UseCase
	availability *fakeAvailabilityRepo
	sessions     *fakeSessionRepo
	metrics      *recordingMetrics
}

func newFixture(existing []domain.Session, txErr error) *fixture {
	f := &fixture{
		availability: &fakeAvailabilityRepo{windows: []domain.AvailabilityWindow{sydneyWindow()}},
		sessions:     &fakeSessionRepo{sessions: existing},
		metrics:      &recordingMetrics{},
	}
	f.uc = NewUseCase(f.availability, f.sessions, staticSettings{}, fakeTxManager{err: txErr}, f.metrics, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: testNow}
	return f
}

func validRequest() *Request {
	return &Request{
		UserID:          testClient,
		OwnerID:         testOwner,
		Date:            bookingDate,
		StartTime:       "10:00",
		PaymentID:       ptr.Ptr("pay-1"),
		PaidAmountCents: 5000,
	}
}

func TestExecute_CreatesSessionInOwnerTimezone(t *testing.T) {
	f := newFixture(nil, nil)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "s1", resp.ID)
	assert.Equal(t, time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC), resp.StartUTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), resp.EndUTC)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, domain.SessionStatusScheduled, resp.Status)
	assert.Equal(t, testClient, resp.ClientID)
	assert.Equal(t, int64(5000), resp.PaidAmountCents)

	require.Len(t, f.availability.dates, 3)
	assert.Equal(t, bookingDate, f.availability.dates[1])
	assert.Empty(t, f.metrics.rejections)
}

func TestExecute_ExplicitTimezone(t *testing.T) {
	f := newFixture(nil, nil)
	req := validRequest()
	req.Date = time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	req.StartTime = "23:00"
	req.Timezone = ptr.Ptr("UTC")
	req.DurationMinutes = ptr.Ptr(30)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC), resp.StartUTC)
	assert.Equal(t, 30, resp.DurationMinutes)
}

func TestExecute_BackToBackIsAllowed(t *testing.T) {
	existing := domain.Session{
		ID:       "existing",
		OwnerID:  testOwner,
		StartUTC: time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC),
		EndUTC:   time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC),
		Status:   domain.SessionStatusScheduled,
	}
	f := newFixture([]domain.Session{existing}, nil)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_ConflictWithExistingSession(t *testing.T) {
	existing := domain.Session{
		ID:       "existing",
		OwnerID:  testOwner,
		StartUTC: time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC),
		EndUTC:   time.Date(2025, 3, 10, 0, 30, 0, 0, time.UTC),
		Status:   domain.SessionStatusLive,
	}
	f := newFixture([]domain.Session{existing}, nil)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.sessions.created)
	assert.Equal(t, []string{rejectionConflict}, f.metrics.rejections)
}

func TestExecute_CancelledSessionDoesNotConflict(t *testing.T) {
	existing := domain.Session{
		ID:       "existing",
		OwnerID:  testOwner,
		StartUTC: time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC),
		EndUTC:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:   domain.SessionStatusCancelled,
	}
	f := newFixture([]domain.Session{existing}, nil)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_PastBooking(t *testing.T) {
	f := newFixture(nil, nil)
	// 10:00 по Сиднею = 23:00 UTC, минимальное время до начала 2 часа
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 3, 9, 21, 30, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPastBooking)
	assert.Equal(t, []string{rejectionPast}, f.metrics.rejections)
}

func TestExecute_OutsideAvailability(t *testing.T) {
	f := newFixture(nil, nil)
	req := validRequest()
	req.StartTime = "11:30"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideAvailability)
	assert.Equal(t, []string{rejectionOutside}, f.metrics.rejections)
}

func TestExecute_ExclusionConstraintViolation(t *testing.T) {
	f := newFixture(nil, nil)
	f.sessions.createErr = fmt.Errorf("%w: Create - execute insert", sessionStorage.ErrSlotNotAvailable)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_SerializationFailure(t *testing.T) {
	f := newFixture(nil, fmt.Errorf("%w: could not serialize access", txmanager.ErrSerializationFailure))

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, []string{rejectionConflict}, f.metrics.rejections)
}

func TestExecute_Validation(t *testing.T) {
	tests := map[string]func(r *Request){
		"no user":          func(r *Request) { r.UserID = "" },
		"no owner":         func(r *Request) { r.OwnerID = "" },
		"self booking":     func(r *Request) { r.UserID = testOwner },
		"no date":          func(r *Request) { r.Date = time.Time{} },
		"bad time":         func(r *Request) { r.StartTime = "25:00" },
		"short duration":   func(r *Request) { r.DurationMinutes = ptr.Ptr(1) },
		"negative amount":  func(r *Request) { r.PaidAmountCents = -1 },
		"paid without id":  func(r *Request) { r.PaymentID = nil },
		"unknown timezone": func(r *Request) { r.Timezone = ptr.Ptr("Mars/Olympus") },
		"local timezone":   func(r *Request) { r.Timezone = ptr.Ptr("Local") },
		"blank payment id": func(r *Request) { r.PaymentID = ptr.Ptr(" ") },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(nil, nil)
			req := validRequest()
			mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.sessions.created)
		})
	}
}

func TestExecute_FreeBookingWithoutPayment(t *testing.T) {
	f := newFixture(nil, nil)
	req := validRequest()
	req.PaymentID = nil
	req.PaidAmountCents = 0

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.PaymentID)
}

func TestResolveDuration_FallsBackToSettings(t *testing.T) {
	start := time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC) // 16:00 по Сиднею, вне окна
	assert.Equal(t, 45, resolveDuration(nil, []domain.AvailabilityWindow{sydneyWindow()}, start, 45))
	assert.Equal(t, 60, resolveDuration(nil, []domain.AvailabilityWindow{sydneyWindow()}, time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC), 45))
	assert.Equal(t, 15, resolveDuration(ptr.Ptr(15), nil, start, 45))
}

type brokenTimezoneSettings struct{}

func (brokenTimezoneSettings) Resolve(_ context.Context, ownerID string) (*domain.OwnerSettings, error) {
	return &domain.OwnerSettings{OwnerID: ownerID, Timezone: "Mars/Olympus_Mons", DefaultSessionDurationMinutes: 60}, nil
}

func TestExecute_OwnerTimezoneMisconfigured(t *testing.T) {
	f := newFixture(nil, nil)
	f.uc.settings = brokenTimezoneSettings{}

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:    testClient,
		OwnerID:   testOwner,
		Date:      bookingDate,
		StartTime: "09:00",
	})

	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, f.metrics.rejections)
	assert.Empty(t, f.sessions.created)
}

func TestExecute_RequestTimezoneInvalid(t *testing.T) {
	f := newFixture(nil, nil)

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:    testClient,
		OwnerID:   testOwner,
		Date:      bookingDate,
		StartTime: "09:00",
		Timezone:  ptr.Ptr("Mars/Olympus_Mons"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, []string{rejectionInvalidInput}, f.metrics.rejections)
}

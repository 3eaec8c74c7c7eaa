package schedule_webinar

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
)

const testOwner = "owner-1"

type fakeWebinarRepo struct {
	created []domain.Webinar
}

func (f *fakeWebinarRepo) Create(_ context.Context, w *domain.Webinar) (*domain.Webinar, error) {
	w.ID = fmt.Sprintf("web-%d", len(f.created)+1)
	f.created = append(f.created, *w)
	return w, nil
}

type fakeSessionRepo struct {
	existing  []domain.Session
	created   []domain.Session
	createErr error
}

func (f *fakeSessionRepo) GetActiveByOwnerInRange(_ context.Context, ownerID string, from, to time.Time) ([]domain.Session, error) {
	result := make([]domain.Session, 0)
	for _, s := range f.existing {
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

// rollbackTx имитирует откат: сессии, созданные в неудачной транзакции, отбрасываются
type rollbackTx struct {
	sessions *fakeSessionRepo
	webinars *fakeWebinarRepo
}

func (tx rollbackTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	sessions, webinars := len(tx.sessions.created), len(tx.webinars.created)
	if err := fn(ctx); err != nil {
		tx.sessions.created = tx.sessions.created[:sessions]
		tx.webinars.created = tx.webinars.created[:webinars]
		return err
	}
	return nil
}

type berlinSettings struct{}

func (berlinSettings) Resolve(_ context.Context, ownerID string) (*domain.OwnerSettings, error) {
	return &domain.OwnerSettings{OwnerID: ownerID, Timezone: "Europe/Berlin"}, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

func newFixture(existing []domain.Session, maxOccurrences int) (*UseCase, *fakeSessionRepo, *fakeWebinarRepo) {
	sessions := &fakeSessionRepo{existing: existing}
	webinars := &fakeWebinarRepo{}
	uc := NewUseCase(webinars, sessions, berlinSettings{}, rollbackTx{sessions: sessions, webinars: webinars}, maxOccurrences, logger.NewNop())
	uc.timeProvider = fixedTime{now: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	return uc, sessions, webinars
}

// validRequest еженедельно по понедельникам в 18:00 по Берлину, начиная с 24 марта 2025.
// 30 марта Берлин переходит на летнее время.
func validRequest() *Request {
	return &Request{
		UserID:          testOwner,
		OwnerID:         testOwner,
		Title:           "Go concurrency",
		AnchorDate:      time.Date(2025, 3, 24, 0, 0, 0, 0, time.UTC),
		StartTime:       "18:00",
		DurationMinutes: 90,
		PriceCents:      2500,
		Frequency:       "weekly",
		Interval:        1,
		ByWeekday:       []int{1},
		Count:           3,
	}
}

func TestExecute_CreatesSessionsAcrossDST(t *testing.T) {
	uc, sessions, webinars := newFixture(nil, 0)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "web-1", resp.WebinarID)
	assert.Equal(t, "Europe/Berlin", resp.Timezone)
	require.Len(t, resp.Sessions, 3)

	assert.Equal(t, time.Date(2025, 3, 24, 17, 0, 0, 0, time.UTC), resp.Sessions[0].StartUTC)
	assert.Equal(t, time.Date(2025, 3, 31, 16, 0, 0, 0, time.UTC), resp.Sessions[1].StartUTC)
	assert.Equal(t, time.Date(2025, 4, 7, 16, 0, 0, 0, time.UTC), resp.Sessions[2].StartUTC)
	assert.Equal(t, time.Date(2025, 4, 7, 17, 30, 0, 0, time.UTC), resp.Sessions[2].EndUTC)

	require.Len(t, sessions.created, 3)
	for i, s := range sessions.created {
		assert.Equal(t, "web-1", *s.WebinarID)
		assert.Empty(t, s.ClientID)
		assert.Equal(t, domain.SessionStatusScheduled, s.Status)
		assert.Equal(t, s.ID, resp.Sessions[i].SessionID)
	}

	require.Len(t, webinars.created, 1)
	assert.Equal(t, 3, webinars.created[0].Rule.Count)
	assert.Equal(t, "Europe/Berlin", webinars.created[0].Timezone)
}

func TestExecute_ConflictCreatesNothing(t *testing.T) {
	existing := domain.Session{
		ID:       "busy",
		OwnerID:  testOwner,
		StartUTC: time.Date(2025, 3, 31, 17, 0, 0, 0, time.UTC),
		EndUTC:   time.Date(2025, 3, 31, 18, 0, 0, 0, time.UTC),
		Status:   domain.SessionStatusScheduled,
	}
	uc, sessions, webinars := newFixture([]domain.Session{existing}, 0)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrScheduleConflict)
	assert.Contains(t, err.Error(), "2025-03-31")
	assert.Empty(t, sessions.created)
	assert.Empty(t, webinars.created)
}

func TestExecute_BackToBackWithExistingIsAllowed(t *testing.T) {
	existing := domain.Session{
		ID:       "before",
		OwnerID:  testOwner,
		StartUTC: time.Date(2025, 3, 24, 16, 0, 0, 0, time.UTC),
		EndUTC:   time.Date(2025, 3, 24, 17, 0, 0, 0, time.UTC),
		Status:   domain.SessionStatusLive,
	}
	uc, _, _ := newFixture([]domain.Session{existing}, 0)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_ConcurrentInsertRollsBack(t *testing.T) {
	uc, sessions, webinars := newFixture(nil, 0)
	sessions.createErr = fmt.Errorf("%w: Create - execute insert", sessionStorage.ErrSlotNotAvailable)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrScheduleConflict)
	assert.Empty(t, webinars.created)
}

func TestExecute_TooManyOccurrences(t *testing.T) {
	uc, _, _ := newFixture(nil, 5)

	req := validRequest()
	req.Count = 6
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooManyOccurrences)

	req = validRequest()
	req.Count = 0
	req.Frequency = "daily"
	req.ByWeekday = nil
	req.Until = ptr.Ptr(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooManyOccurrences)
}

func TestExecute_DistantUntilIsRejected(t *testing.T) {
	uc, sessions, webinars := newFixture(nil, 5)

	req := validRequest()
	req.Count = 0
	req.Until = ptr.Ptr(time.Date(2999, 12, 31, 0, 0, 0, 0, time.UTC))
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrTooManyOccurrences)
	assert.Empty(t, sessions.created)
	assert.Empty(t, webinars.created)
}

func TestExecute_InvalidRecurrence(t *testing.T) {
	tests := map[string]func(r *Request){
		"no termination":       func(r *Request) { r.Count = 0 },
		"both terminations":    func(r *Request) { r.Until = ptr.Ptr(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)) },
		"unknown frequency":    func(r *Request) { r.Frequency = "monthly" },
		"weekday out of range": func(r *Request) { r.ByWeekday = []int{7} },
		"negative interval":    func(r *Request) { r.Interval = -1 },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			uc, sessions, _ := newFixture(nil, 0)
			req := validRequest()
			mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidRecurrence)
			assert.Empty(t, sessions.created)
		})
	}
}

func TestExecute_UntilBeforeAnchorProducesNothing(t *testing.T) {
	uc, _, _ := newFixture(nil, 0)
	req := validRequest()
	req.Count = 0
	req.Until = ptr.Ptr(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidRecurrence)
}

func TestExecute_PastFirstOccurrence(t *testing.T) {
	uc, _, _ := newFixture(nil, 0)
	uc.timeProvider = fixedTime{now: time.Date(2025, 3, 24, 17, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPastOccurrence)
}

func TestExecute_Validation(t *testing.T) {
	uc, _, _ := newFixture(nil, 0)

	req := validRequest()
	req.UserID = "someone-else"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)

	invalid := map[string]func(r *Request){
		"no title":       func(r *Request) { r.Title = "  " },
		"bad time":       func(r *Request) { r.StartTime = "7pm" },
		"no anchor":      func(r *Request) { r.AnchorDate = time.Time{} },
		"zero duration":  func(r *Request) { r.DurationMinutes = 0 },
		"negative price": func(r *Request) { r.PriceCents = -1 },
		"bad timezone":   func(r *Request) { r.Timezone = ptr.Ptr("Europe/Atlantis") },
	}
	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

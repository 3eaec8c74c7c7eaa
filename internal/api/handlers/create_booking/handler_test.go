package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

func newRequest(body string, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	return req
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:              "s1",
		OwnerID:         "owner-1",
		ClientID:        "client-1",
		StartUTC:        start,
		EndUTC:          start.Add(time.Hour),
		DurationMinutes: 60,
		Status:          domain.SessionStatusScheduled,
		CreatedAt:       start,
		UpdatedAt:       start,
	}}
	h := NewHandler(uc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"ownerId":"owner-1","date":"2025-03-10","startTime":"09:00","paidAmountCents":0}`, "client-1"))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "client-1", uc.got.UserID)
	assert.Equal(t, "owner-1", uc.got.OwnerID)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), uc.got.Date)
	assert.Equal(t, "09:00", uc.got.StartTime)

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "s1", body.ID)
	assert.Equal(t, "2025-03-09T22:00:00Z", body.StartUTC)
	assert.Equal(t, "2025-03-09T23:00:00Z", body.EndUTC)
	assert.Equal(t, "scheduled", body.Status)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := map[string]struct {
		err    error
		status int
	}{
		"slot taken":   {err: createBooking.ErrSlotNotAvailable, status: http.StatusConflict},
		"past":         {err: createBooking.ErrPastBooking, status: http.StatusBadRequest},
		"outside":      {err: createBooking.ErrOutsideAvailability, status: http.StatusBadRequest},
		"invalid":      {err: fmt.Errorf("%w: bad", createBooking.ErrInvalidInput), status: http.StatusBadRequest},
		"internal":     {err: createBooking.ErrInternal, status: http.StatusInternalServerError},
		"unclassified": {err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(`{"ownerId":"owner-1","date":"2025-03-10","startTime":"09:00"}`, "client-1"))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	tests := map[string]struct {
		body   string
		userID string
		status int
	}{
		"no user":       {body: `{}`, userID: "", status: http.StatusUnauthorized},
		"broken json":   {body: `{`, userID: "client-1", status: http.StatusBadRequest},
		"unknown field": {body: `{"foo":1}`, userID: "client-1", status: http.StatusBadRequest},
		"bad date":      {body: `{"ownerId":"o","date":"10.03.2025","startTime":"09:00"}`, userID: "client-1", status: http.StatusBadRequest},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			uc := &fakeUseCase{}
			h := NewHandler(uc, logger.NewNop())
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.body, tt.userID))
			assert.Equal(t, tt.status, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

package get_user_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/sessions/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeService struct {
	got *models.GetClientSessionsRequest
}

func (f *fakeService) GetClientSessions(ctx context.Context, req *models.GetClientSessionsRequest) (*models.SessionListResponse, error) {
	f.got = req
	return &models.SessionListResponse{Sessions: []models.SessionResponse{}}, nil
}

func serve(h *Handler, target, userID string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/users/{userId}/bookings", h.Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_OwnBookings(t *testing.T) {
	svc := &fakeService{}
	rec := serve(NewHandler(svc, logger.NewNop()), "/api/v1/users/client-1/bookings?status=scheduled", "client-1")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, "client-1", svc.got.UserID)
	require.NotNil(t, svc.got.Status)
	assert.Equal(t, "scheduled", *svc.got.Status)
}

func TestHandle_ForeignBookingsForbidden(t *testing.T) {
	svc := &fakeService{}
	rec := serve(NewHandler(svc, logger.NewNop()), "/api/v1/users/client-2/bookings", "client-1")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, svc.got)
}

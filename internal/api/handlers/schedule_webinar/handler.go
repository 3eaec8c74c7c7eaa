package schedule_webinar

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	scheduleWebinar "github.com/m04kA/SMC-SchedulingService/internal/usecase/schedule_webinar"
)

const (
	msgInvalidOwnerID     = "некорректный ID владельца"
	msgInvalidRequest     = "некорректный формат запроса"
	msgInvalidDate        = "некорректная дата, ожидается формат YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidRecurrence  = "некорректное правило повторения"
	msgTooManyOccurrences = "слишком много сессий в расписании"
	msgPastOccurrence     = "первая сессия вебинара в прошлом"
	msgScheduleConflict   = "расписание пересекается с существующими сессиями"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase ScheduleWebinarUseCase
	logger  Logger
}

func NewHandler(useCase ScheduleWebinarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/owners/{ownerId}/webinars
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["ownerId"]
	if ownerID == "" {
		h.logger.Warn("POST /owners/{id}/webinars - Empty owner ID")
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /owners/{id}/webinars - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ScheduleWebinarRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /owners/{id}/webinars - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(ownerID, userID)
	if err != nil {
		h.logger.Warn("POST /owners/{id}/webinars - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduleWebinar.ErrAccessDenied):
			h.logger.Warn("POST /owners/{id}/webinars - Access denied: owner_id=%s, user_id=%s", ownerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, scheduleWebinar.ErrScheduleConflict):
			h.logger.Warn("POST /owners/{id}/webinars - Schedule conflict: owner_id=%s, error=%v", ownerID, err)
			handlers.RespondConflict(w, msgScheduleConflict)

		case errors.Is(err, scheduleWebinar.ErrInvalidRecurrence):
			h.logger.Warn("POST /owners/{id}/webinars - Invalid recurrence: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRecurrence)

		case errors.Is(err, scheduleWebinar.ErrTooManyOccurrences):
			h.logger.Warn("POST /owners/{id}/webinars - Too many occurrences: %v", err)
			handlers.RespondBadRequest(w, msgTooManyOccurrences)

		case errors.Is(err, scheduleWebinar.ErrPastOccurrence):
			h.logger.Warn("POST /owners/{id}/webinars - First occurrence in the past: owner_id=%s", ownerID)
			handlers.RespondBadRequest(w, msgPastOccurrence)

		case errors.Is(err, scheduleWebinar.ErrInvalidInput):
			h.logger.Warn("POST /owners/{id}/webinars - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /owners/{id}/webinars - Failed to schedule webinar: owner_id=%s, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /owners/{id}/webinars - Webinar scheduled successfully: webinar_id=%s, owner_id=%s, sessions=%d",
		result.WebinarID, ownerID, len(result.Sessions))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

package get_owner_settings

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

const (
	msgInvalidOwnerID = "некорректный ID владельца"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/{ownerId}/settings
// Публичный эндпоинт: клиенту нужны часовой пояс и политика отмены
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["ownerId"]
	if ownerID == "" {
		h.logger.Warn("GET /owners/{id}/settings - Empty owner ID")
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	settings, err := h.service.Get(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("GET /owners/{id}/settings - Failed to get settings: owner_id=%s, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /owners/{id}/settings - Settings retrieved successfully: owner_id=%s, is_default=%t",
		ownerID, settings.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, settings)
}

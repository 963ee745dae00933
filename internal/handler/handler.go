package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avilkin/blog-service/internal/auth"
	"github.com/avilkin/blog-service/internal/config"
	"github.com/avilkin/blog-service/internal/models"
	"github.com/avilkin/blog-service/internal/service"
	"github.com/avilkin/blog-service/internal/uploads"
	"github.com/sirupsen/logrus"
)

// maxUploadSize bounds multipart form parsing for cover uploads.
const maxUploadSize = 10 << 20

type Handler struct {
	svc     *service.Service
	uploads *uploads.Store
	log     *logrus.Logger
	cfg     *config.Config
}

func NewHandler(svc *service.Service, up *uploads.Store, log *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{svc: svc, uploads: up, log: log, cfg: cfg}
}

func (h *Handler) respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.log.Errorf("Failed to marshal JSON response: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		h.log.Errorf("Failed to write HTTP response: %v", err)
	}
}

func (h *Handler) respondErrorMessage(w http.ResponseWriter, code int, message string) {
	h.respondJSON(w, code, map[string]string{"error": message})
}

// respondError maps domain errors to HTTP statuses. Anything outside the
// known taxonomy becomes a minimal 500.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrWrongCredentials),
		errors.Is(err, models.ErrDuplicate),
		errors.Is(err, models.ErrNotAuthor):
		h.respondErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		h.respondErrorMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrTokenMissing),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenInvalid):
		h.respondErrorMessage(w, http.StatusUnauthorized, err.Error())
	default:
		h.log.Errorf("Unexpected error: %v", err)
		h.respondErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

package handler

import (
	"net/http"
	"time"

	"github.com/dreschagin/model-asset-server/internal/application/dto"
	"github.com/dreschagin/model-asset-server/internal/interfaces/http/middleware"
)

// HealthHandler отвечает на health check; от файловой системы не зависит
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler создает новый handler. now == nil означает time.Now.
func NewHealthHandler(now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{now: now}
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, dto.NewHealthDTO(h.now()))
}

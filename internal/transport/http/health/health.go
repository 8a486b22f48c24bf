package health

import (
	"net/http"

	"github.com/you-humble/sewing-inventory/platform/logger"
)

const Banner = "Sewing Machine Parts Inventory API is running"

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	if _, err := w.Write([]byte("SERVING")); err != nil {
		logger.Error(r.Context(), "health check", logger.ErrorF(err))
	}
}

func Root(w http.ResponseWriter, r *http.Request) {
	if _, err := w.Write([]byte(Banner)); err != nil {
		logger.Error(r.Context(), "root banner", logger.ErrorF(err))
	}
}

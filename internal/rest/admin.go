package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"github.com/hkk4567/webbanhang/business/recommender"
	"github.com/hkk4567/webbanhang/pkg/logger"
	"github.com/hkk4567/webbanhang/pkg/metrics"
)

type (
	AdminHandler struct {
		trainerService TrainerService
		timeout        time.Duration
	}

	TrainerService interface {
		Train(ctx context.Context) (*recommender.TrainReport, error)
	}
)

func NewAdminHandler(svc TrainerService) *AdminHandler {
	return &AdminHandler{
		trainerService: svc,
		// Full-batch training over all orders; far longer than a request timeout.
		timeout: 10 * time.Minute,
	}
}

// POST /api/v1/admin/recommendations/retrain
//
// Runs a full training cycle and persists a new artifact generation. The
// running server keeps serving the generation it loaded at startup; restart
// to pick up the new one.
func (h *AdminHandler) Retrain(c echo.Context) error {
	metrics.RetrainRuns.Inc()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	report, err := h.trainerService.Train(ctx)
	if err != nil {
		if errors.Is(err, recommender.ErrInsufficientData) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Retrain failed", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(report))
}

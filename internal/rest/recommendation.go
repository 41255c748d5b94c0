package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/hkk4567/webbanhang/business/recommender"
	"github.com/hkk4567/webbanhang/domain"
	"github.com/hkk4567/webbanhang/pkg/logger"
	"github.com/hkk4567/webbanhang/pkg/metrics"
)

type (
	RecommendationHandler struct {
		validate           *validator.Validate
		recommenderService RecommenderService
		defaultNumRecs     int
		defaultNumSimilar  int
		defaultAlpha       float64
		timeout            time.Duration
	}

	RecommenderService interface {
		RecommendForUser(ctx context.Context, userID uint64, n int, alpha float64) ([]domain.RecommendedProduct, error)
		SimilarProducts(ctx context.Context, productID uint64, n int) ([]domain.RecommendedProduct, error)
	}

	UserRecommendQuery struct {
		UserID  uint64   `query:"user_id" validate:"required"`
		NumRecs int      `query:"num_recs"`
		Alpha   *float64 `query:"alpha" validate:"omitempty,gte=0,lte=1"`
	}

	SimilarItemQuery struct {
		ProductID  uint64 `query:"product_id" validate:"required"`
		NumSimilar int    `query:"num_similar"`
	}
)

func NewRecommendationHandler(svc RecommenderService, defaultNumRecs, defaultNumSimilar int, defaultAlpha float64) *RecommendationHandler {
	return &RecommendationHandler{
		validate:           validator.New(),
		recommenderService: svc,
		defaultNumRecs:     defaultNumRecs,
		defaultNumSimilar:  defaultNumSimilar,
		defaultAlpha:       defaultAlpha,
		timeout:            10 * time.Second,
	}
}

// GET /api/v1/recommendations/user?user_id=1&num_recs=5&alpha=0.5
func (h *RecommendationHandler) RecommendForUser(c echo.Context) error {
	timer := time.Now()
	metrics.RecommendRequests.Inc()

	var q UserRecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if q.NumRecs <= 0 {
		q.NumRecs = h.defaultNumRecs
	}
	alpha := h.defaultAlpha
	if q.Alpha != nil {
		alpha = *q.Alpha
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.recommenderService.RecommendForUser(ctx, q.UserID, q.NumRecs, alpha)
	if err != nil {
		if errors.Is(err, recommender.ErrInvalidCount) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to recommend for user", "user_id", q.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.RecommendLatency.Observe(time.Since(timer).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// GET /api/v1/recommendations/item?product_id=10&num_similar=3
func (h *RecommendationHandler) SimilarItems(c echo.Context) error {
	metrics.SimilarItemRequests.Inc()

	var q SimilarItemQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if q.NumSimilar <= 0 {
		q.NumSimilar = h.defaultNumSimilar
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.recommenderService.SimilarProducts(ctx, q.ProductID, q.NumSimilar)
	if err != nil {
		if errors.Is(err, recommender.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if errors.Is(err, recommender.ErrInvalidCount) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to find similar items", "product_id", q.ProductID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

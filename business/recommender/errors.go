package recommender

import "errors"

var (
	// ErrInsufficientData means fewer than 2 distinct users or 2 distinct
	// products were available; factorization is undefined below that and the
	// training run must abort without writing artifacts.
	ErrInsufficientData = errors.New("insufficient data: need at least 2 distinct users and 2 distinct products")

	// ErrInsufficientRank means the clamped factorization rank dropped below 1.
	ErrInsufficientRank = errors.New("insufficient rank: factorization rank must be at least 1")

	// ErrProductNotFound is returned for similar-item lookups on a product id
	// that is absent from the latent feature table. Surfaced as 404 at the
	// HTTP boundary, never fatal to the process.
	ErrProductNotFound = errors.New("product not found in item feature table")

	// ErrInvalidCount is returned when a non-positive result count is requested.
	ErrInvalidCount = errors.New("requested count must be positive")
)

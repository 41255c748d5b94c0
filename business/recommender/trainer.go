package recommender

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hkk4567/webbanhang/domain"
	"github.com/hkk4567/webbanhang/pkg/logger"
)

// ---- Repository interfaces ----

type ProductCatalogRepository interface {
	// FindAllWithCategory returns every product joined to its category name
	// (NULL when uncategorized).
	FindAllWithCategory(ctx context.Context) ([]domain.CatalogRow, error)
}

type InteractionRepository interface {
	// FindAll returns every purchase event: order line items joined to orders.
	FindAll(ctx context.Context) ([]domain.Interaction, error)
}

// TrainingConfig controls a batch run. With Tune set, rank and alpha come out
// of the grid sweep; otherwise Rank/Alpha are used as-is (rank still clamped
// to the matrix dimensions by the factorizer).
type TrainingConfig struct {
	Rank  int
	Alpha float64
	Tune  bool
	Grid  GridConfig
}

// DefaultTrainingConfig matches the model's long-standing serving defaults.
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Rank:  10,
		Alpha: 0.5,
		Tune:  false,
		Grid:  DefaultGrid(),
	}
}

// TrainReport summarizes a completed run.
type TrainReport struct {
	RunID        string        `json:"run_id"`
	Rank         int           `json:"rank"`
	Alpha        float64       `json:"alpha"`
	Users        int           `json:"users"`
	Products     int           `json:"products"`
	Interactions int           `json:"interactions"`
	Duration     time.Duration `json:"duration"`
	Tuning       *TuneReport   `json:"tuning,omitempty"`
}

// Trainer runs full-batch model training: load everything, optionally sweep
// hyperparameters, fit on all data, persist one artifact generation. The
// model is never updated incrementally.
type Trainer struct {
	products     ProductCatalogRepository
	interactions InteractionRepository
	store        ArtifactStore
	cfg          TrainingConfig
}

func NewTrainer(
	products ProductCatalogRepository,
	interactions InteractionRepository,
	store ArtifactStore,
	cfg TrainingConfig,
) *Trainer {
	return &Trainer{
		products:     products,
		interactions: interactions,
		store:        store,
		cfg:          cfg,
	}
}

// Train executes one batch run. Data-loading and factorization failures abort
// the run before anything is written, so a broken run never replaces a good
// artifact generation.
func (t *Trainer) Train(ctx context.Context) (*TrainReport, error) {
	started := time.Now()

	catalog, err := t.products.FindAllWithCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load product catalog: %w", err)
	}
	events, err := t.interactions.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}
	logger.Info("Training data loaded", "products", len(catalog), "interactions", len(events))

	rank, alpha := t.cfg.Rank, t.cfg.Alpha
	var tuning *TuneReport
	if t.cfg.Tune {
		tuning, err = Tune(events, catalog, t.cfg.Grid)
		if err != nil {
			return nil, fmt.Errorf("hyperparameter tuning failed: %w", err)
		}
		rank, alpha = tuning.BestRank, tuning.BestAlpha
		logger.Info("Tuning finished",
			"best_rank", rank,
			"best_alpha", alpha,
			"test_precision", tuning.TestPrecision,
			"test_recall", tuning.TestRecall,
		)
	}

	userIDs, productIDs := InteractionUniverse(events, catalog)
	matrix, err := BuildInteractionMatrix(events, userIDs, productIDs)
	if err != nil {
		return nil, err
	}

	fitted, err := FitTruncatedSVD(matrix, rank)
	if err != nil {
		return nil, err
	}
	cfScores, err := fitted.Scores(matrix.UserIDs, matrix.ProductIDs)
	if err != nil {
		return nil, err
	}
	cbfScores := CBFScores(matrix, BuildFeatureMatrix(catalog, matrix.ProductIDs))

	scalers := ScalerPair{CF: &MinMaxScaler{}, CBF: &MinMaxScaler{}}
	cfNorm, err := scalers.CF.FitTransform(cfScores)
	if err != nil {
		return nil, err
	}
	cbfNorm, err := scalers.CBF.FitTransform(cbfScores)
	if err != nil {
		return nil, err
	}

	items, err := NewItemFeatureTable(fitted, matrix.ProductIDs, catalog)
	if err != nil {
		return nil, err
	}

	arts := &Artifacts{
		Meta: ArtifactMetadata{
			RunID:     uuid.NewString(),
			TrainedAt: time.Now(),
			Rank:      fitted.Rank,
			Alpha:     alpha,
		},
		CFNorm:       cfNorm,
		CBFNorm:      cbfNorm,
		Interactions: matrix,
		Items:        items,
		SVD:          fitted,
		Scalers:      scalers,
	}
	if err := SaveArtifacts(ctx, t.store, arts); err != nil {
		return nil, err
	}

	report := &TrainReport{
		RunID:        arts.Meta.RunID,
		Rank:         fitted.Rank,
		Alpha:        alpha,
		Users:        matrix.Rows(),
		Products:     matrix.Cols(),
		Interactions: len(events),
		Duration:     time.Since(started),
		Tuning:       tuning,
	}
	logger.Info("Training run persisted",
		"run_id", report.RunID,
		"rank", report.Rank,
		"alpha", report.Alpha,
		"users", report.Users,
		"products", report.Products,
		"duration", report.Duration.String(),
	)
	return report, nil
}

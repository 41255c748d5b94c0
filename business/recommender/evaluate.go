package recommender

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/hkk4567/webbanhang/domain"
)

// minSplitEvents is the floor below which a 60/20/20 split stops making sense.
const minSplitEvents = 10

// Splits holds the train/validation/test partition of the raw interactions.
type Splits struct {
	Train      []domain.Interaction
	Validation []domain.Interaction
	Test       []domain.Interaction
}

// SplitInteractions partitions events 60/20/20 with a fixed seed: first an
// 80/20 cut into train+validation vs test, then a 75/25 cut of the remainder.
// The same seed always yields the same partition.
func SplitInteractions(events []domain.Interaction, seed int64) (Splits, error) {
	if len(events) < minSplitEvents {
		return Splits{}, fmt.Errorf("%w: %d interactions is too few for a 60/20/20 split", ErrInsufficientData, len(events))
	}
	rng := rand.New(rand.NewSource(seed))

	shuffled := make([]domain.Interaction, len(events))
	copy(shuffled, events)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	nTest := len(shuffled) / 5
	trainVal := shuffled[:len(shuffled)-nTest]
	test := shuffled[len(shuffled)-nTest:]

	rng.Shuffle(len(trainVal), func(i, j int) {
		trainVal[i], trainVal[j] = trainVal[j], trainVal[i]
	})
	nVal := len(trainVal) / 4

	return Splits{
		Train:      trainVal[:len(trainVal)-nVal],
		Validation: trainVal[len(trainVal)-nVal:],
		Test:       test,
	}, nil
}

// GridConfig is the hyperparameter sweep: candidate ranks, candidate mixing
// weights, the K of precision@K/recall@K, and the split seed.
type GridConfig struct {
	Ranks  []int
	Alphas []float64
	TopK   int
	Seed   int64
}

// DefaultGrid mirrors the tuning grid the model was designed with.
func DefaultGrid() GridConfig {
	return GridConfig{
		Ranks:  []int{10, 20, 30, 40},
		Alphas: []float64{0.2, 0.5, 0.8},
		TopK:   10,
		Seed:   42,
	}
}

// CandidateResult is one (rank, alpha) cell of the sweep with its mean
// validation metrics.
type CandidateResult struct {
	Rank      int     `json:"rank"`
	Alpha     float64 `json:"alpha"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
}

// TuneReport is the outcome of a full sweep: the winning configuration, every
// candidate's validation metrics, and the final metrics of the winning
// configuration refitted on train+validation and evaluated on the held-out
// test users.
type TuneReport struct {
	BestRank      int               `json:"best_rank"`
	BestAlpha     float64           `json:"best_alpha"`
	Candidates    []CandidateResult `json:"candidates"`
	TestPrecision float64           `json:"test_precision"`
	TestRecall    float64           `json:"test_recall"`
}

// Tune sweeps the (rank, alpha) grid on a seeded 60/20/20 split and picks the
// configuration with the highest mean validation precision@K; ties go to the
// first candidate found, sweeping ranks then alphas in ascending order. The
// winner is refitted on train+validation and scored once on the test split.
func Tune(events []domain.Interaction, catalog []domain.CatalogRow, grid GridConfig) (*TuneReport, error) {
	if grid.TopK <= 0 {
		return nil, fmt.Errorf("%w: top-K is %d", ErrInvalidCount, grid.TopK)
	}
	splits, err := SplitInteractions(events, grid.Seed)
	if err != nil {
		return nil, err
	}

	// Every matrix in the sweep is aligned to the full universe observed
	// across all splits, so train-only matrices stay comparable with the
	// validation and test user sets.
	userIDs, productIDs := InteractionUniverse(events, catalog)

	trainM, err := BuildInteractionMatrix(splits.Train, userIDs, productIDs)
	if err != nil {
		return nil, err
	}

	features := BuildFeatureMatrix(catalog, trainM.ProductIDs)

	// CBF scores and their normalization depend on neither rank nor alpha,
	// so they are computed once for the whole sweep.
	cbfNorm, err := (&MinMaxScaler{}).FitTransform(CBFScores(trainM, features))
	if err != nil {
		return nil, err
	}

	ranks := clampRanks(grid.Ranks, trainM)
	valTruth := heldOutSets(splits.Validation)

	report := &TuneReport{BestRank: -1}
	bestPrecision := -1.0
	for _, rank := range ranks {
		fitted, err := FitTruncatedSVD(trainM, rank)
		if err != nil {
			return nil, err
		}
		cfScores, err := fitted.Scores(trainM.UserIDs, trainM.ProductIDs)
		if err != nil {
			return nil, err
		}
		cfNorm, err := (&MinMaxScaler{}).FitTransform(cfScores)
		if err != nil {
			return nil, err
		}

		for _, alpha := range grid.Alphas {
			hybrid, err := BlendScores(cfNorm, cbfNorm, alpha)
			if err != nil {
				return nil, err
			}
			precision, recall := evaluateRanking(hybrid, trainM, valTruth, grid.TopK)
			result := CandidateResult{Rank: fitted.Rank, Alpha: alpha, Precision: precision, Recall: recall}
			report.Candidates = append(report.Candidates, result)

			if precision > bestPrecision {
				bestPrecision = precision
				report.BestRank = fitted.Rank
				report.BestAlpha = alpha
			}
		}
	}

	// Final fit on train+validation with the winning configuration. The CBF
	// matrix normalized here is the one just computed from the refit — not a
	// stale matrix from the sweep.
	trainVal := make([]domain.Interaction, 0, len(splits.Train)+len(splits.Validation))
	trainVal = append(trainVal, splits.Train...)
	trainVal = append(trainVal, splits.Validation...)

	finalM, err := BuildInteractionMatrix(trainVal, userIDs, productIDs)
	if err != nil {
		return nil, err
	}
	finalFitted, err := FitTruncatedSVD(finalM, report.BestRank)
	if err != nil {
		return nil, err
	}
	finalCF, err := finalFitted.Scores(finalM.UserIDs, finalM.ProductIDs)
	if err != nil {
		return nil, err
	}
	finalCFNorm, err := (&MinMaxScaler{}).FitTransform(finalCF)
	if err != nil {
		return nil, err
	}
	finalCBFNorm, err := (&MinMaxScaler{}).FitTransform(CBFScores(finalM, features))
	if err != nil {
		return nil, err
	}
	finalHybrid, err := BlendScores(finalCFNorm, finalCBFNorm, report.BestAlpha)
	if err != nil {
		return nil, err
	}
	report.TestPrecision, report.TestRecall = evaluateRanking(finalHybrid, finalM, heldOutSets(splits.Test), grid.TopK)

	return report, nil
}

// clampRanks drops candidates above min(rows, cols)−1; when none survive the
// maximum valid rank is tried on its own.
func clampRanks(ranks []int, m *Matrix) []int {
	maxRank := m.Rows() - 1
	if m.Cols()-1 < maxRank {
		maxRank = m.Cols() - 1
	}
	valid := make([]int, 0, len(ranks))
	for _, k := range ranks {
		if k >= 1 && k <= maxRank {
			valid = append(valid, k)
		}
	}
	if len(valid) == 0 {
		valid = append(valid, maxRank)
	}
	return valid
}

// heldOutSets groups a split's purchases into per-user truth sets.
func heldOutSets(events []domain.Interaction) map[uint64]map[uint64]struct{} {
	sets := make(map[uint64]map[uint64]struct{})
	for _, e := range events {
		if sets[e.UserID] == nil {
			sets[e.UserID] = make(map[uint64]struct{})
		}
		sets[e.UserID][e.ProductID] = struct{}{}
	}
	return sets
}

// evaluateRanking computes mean precision@K and recall@K over the truth-set
// users, masking items already purchased in the scored matrix's training
// data before ranking. Users absent from the scored matrix are skipped, not
// zero-filled; a user with an empty truth set contributes recall 0.
func evaluateRanking(hybrid, train *Matrix, truth map[uint64]map[uint64]struct{}, topK int) (precision, recall float64) {
	userIDs := make([]uint64, 0, len(truth))
	for uid := range truth {
		userIDs = append(userIDs, uid)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	evaluated := 0
	for _, uid := range userIDs {
		idx, ok := hybrid.UserIndex(uid)
		if !ok {
			continue
		}
		recs := TopNUnpurchased(hybrid.Row(idx), train.Row(idx), hybrid.ProductIDs, topK)
		p, r := PrecisionRecallAtK(recs, truth[uid], topK)
		precision += p
		recall += r
		evaluated++
	}
	if evaluated == 0 {
		return 0, 0
	}
	return precision / float64(evaluated), recall / float64(evaluated)
}

// PrecisionRecallAtK scores a recommendation list against a user's held-out
// purchased set: precision = hits/K, recall = hits/|truth| (0 for an empty
// truth set, never NaN).
func PrecisionRecallAtK(recs []ScoredProduct, truth map[uint64]struct{}, k int) (precision, recall float64) {
	if k <= 0 {
		return 0, 0
	}
	hits := 0
	for _, rec := range recs {
		if _, ok := truth[rec.ProductID]; ok {
			hits++
		}
	}
	precision = float64(hits) / float64(k)
	if len(truth) > 0 {
		recall = float64(hits) / float64(len(truth))
	}
	return precision, recall
}

package recommender

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkk4567/webbanhang/domain"
)

type memStore struct {
	blobs map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{blobs: make(map[string][]byte)}
}

func (s *memStore) Put(_ context.Context, key string, data []byte) error {
	s.blobs[key] = data
	return nil
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := s.blobs[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func trainedArtifacts(t *testing.T) *Artifacts {
	t.Helper()

	catalog := []domain.CatalogRow{
		{ProductID: 10, ProductName: "A", Category: strptr("Trà")},
		{ProductID: 20, ProductName: "B", Category: strptr("Cà phê")},
		{ProductID: 30, ProductName: "C", Category: strptr("Trà")},
	}
	events := []domain.Interaction{
		{UserID: 1, ProductID: 10, Quantity: 3},
		{UserID: 1, ProductID: 30, Quantity: 1},
		{UserID: 2, ProductID: 20, Quantity: 2},
	}
	userIDs, productIDs := InteractionUniverse(events, catalog)
	m, err := BuildInteractionMatrix(events, userIDs, productIDs)
	require.NoError(t, err)

	fitted, err := FitTruncatedSVD(m, 1)
	require.NoError(t, err)
	cfScores, err := fitted.Scores(m.UserIDs, m.ProductIDs)
	require.NoError(t, err)
	cbfScores := CBFScores(m, BuildFeatureMatrix(catalog, m.ProductIDs))

	scalers := ScalerPair{CF: &MinMaxScaler{}, CBF: &MinMaxScaler{}}
	cfNorm, err := scalers.CF.FitTransform(cfScores)
	require.NoError(t, err)
	cbfNorm, err := scalers.CBF.FitTransform(cbfScores)
	require.NoError(t, err)

	items, err := NewItemFeatureTable(fitted, m.ProductIDs, catalog)
	require.NoError(t, err)

	return &Artifacts{
		Meta: ArtifactMetadata{
			RunID:     "test-run",
			TrainedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			Rank:      fitted.Rank,
			Alpha:     0.5,
		},
		CFNorm:       cfNorm,
		CBFNorm:      cbfNorm,
		Interactions: m,
		Items:        items,
		SVD:          fitted,
		Scalers:      scalers,
	}
}

func TestSaveAndLoadArtifacts(t *testing.T) {
	store := newMemStore()
	arts := trainedArtifacts(t)
	ctx := context.Background()

	require.NoError(t, SaveArtifacts(ctx, store, arts))
	assert.Len(t, store.blobs, 7)

	loaded, err := LoadArtifacts(ctx, store)
	require.NoError(t, err)

	assert.Equal(t, arts.Meta, loaded.Meta)
	assert.Equal(t, arts.CFNorm.Data, loaded.CFNorm.Data)
	assert.Equal(t, arts.CBFNorm.Data, loaded.CBFNorm.Data)
	assert.Equal(t, arts.Interactions.ProductIDs, loaded.Interactions.ProductIDs)
	assert.Equal(t, arts.Items.Names, loaded.Items.Names)
	assert.Equal(t, arts.SVD.ItemFactors, loaded.SVD.ItemFactors)
	assert.Equal(t, arts.Scalers.CF.Min, loaded.Scalers.CF.Min)
}

func TestLoadArtifactsMissingBlob(t *testing.T) {
	store := newMemStore()
	require.NoError(t, SaveArtifacts(context.Background(), store, trainedArtifacts(t)))
	delete(store.blobs, ArtifactSVDModel)

	_, err := LoadArtifacts(context.Background(), store)
	assert.Error(t, err)
}

func TestLoadArtifactsShapeMismatch(t *testing.T) {
	store := newMemStore()
	arts := trainedArtifacts(t)
	require.NoError(t, SaveArtifacts(context.Background(), store, arts))

	// overwrite the cf blob with one on narrower axes
	narrow := NewMatrix(arts.Interactions.UserIDs, arts.Interactions.ProductIDs[:2])
	data, err := encodeArtifact(narrow)
	require.NoError(t, err)
	store.blobs[ArtifactCFNorm] = data

	_, err = LoadArtifacts(context.Background(), store)
	assert.ErrorContains(t, err, "shape mismatch")
}

package recommender

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"time"
)

// Artifact keys. One opaque blob per key, written by a training run and read
// back at service start. The names mirror the model files the serving layer
// has always used.
const (
	ArtifactCFNorm       = "cf_scores_normalized"
	ArtifactCBFNorm      = "cbf_scores_normalized"
	ArtifactInteractions = "user_item_matrix_full"
	ArtifactItemFeatures = "item_features"
	ArtifactSVDModel     = "svd_model"
	ArtifactScalers      = "scalers"
	ArtifactMeta         = "metadata"
)

// ArtifactStore is the key-value persistence boundary between training and
// serving. Blobs are opaque to the store.
type ArtifactStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// ArtifactMetadata identifies a trained model generation.
type ArtifactMetadata struct {
	RunID     string
	TrainedAt time.Time
	Rank      int
	Alpha     float64
}

// ScalerPair bundles the fitted CF and CBF scalers into one blob.
type ScalerPair struct {
	CF  *MinMaxScaler
	CBF *MinMaxScaler
}

// Artifacts is everything a serving process needs: the normalized score
// matrices, the raw interaction matrix (purchase masking and the best-seller
// fallback), the item latent-feature table, the fitted factorizer, and the
// fitted scalers. Treated as immutable once loaded.
type Artifacts struct {
	Meta         ArtifactMetadata
	CFNorm       *Matrix
	CBFNorm      *Matrix
	Interactions *Matrix
	Items        *ItemFeatureTable
	SVD          *TruncatedSVD
	Scalers      ScalerPair
}

// SaveArtifacts encodes every part before the first write, so an encoding
// failure aborts the run without leaving a partial generation behind.
func SaveArtifacts(ctx context.Context, store ArtifactStore, a *Artifacts) error {
	blobs := []struct {
		key   string
		value any
	}{
		{ArtifactMeta, &a.Meta},
		{ArtifactCFNorm, a.CFNorm},
		{ArtifactCBFNorm, a.CBFNorm},
		{ArtifactInteractions, a.Interactions},
		{ArtifactItemFeatures, a.Items},
		{ArtifactSVDModel, a.SVD},
		{ArtifactScalers, &a.Scalers},
	}

	encoded := make(map[string][]byte, len(blobs))
	for _, b := range blobs {
		data, err := encodeArtifact(b.value)
		if err != nil {
			return fmt.Errorf("failed to encode artifact %q: %w", b.key, err)
		}
		encoded[b.key] = data
	}
	for _, b := range blobs {
		if err := store.Put(ctx, b.key, encoded[b.key]); err != nil {
			return fmt.Errorf("failed to store artifact %q: %w", b.key, err)
		}
	}
	return nil
}

// LoadArtifacts reads a complete generation back and validates that the
// matrices still agree on their axes.
func LoadArtifacts(ctx context.Context, store ArtifactStore) (*Artifacts, error) {
	a := &Artifacts{
		CFNorm:       &Matrix{},
		CBFNorm:      &Matrix{},
		Interactions: &Matrix{},
		Items:        &ItemFeatureTable{},
		SVD:          &TruncatedSVD{},
	}
	parts := []struct {
		key   string
		value any
	}{
		{ArtifactMeta, &a.Meta},
		{ArtifactCFNorm, a.CFNorm},
		{ArtifactCBFNorm, a.CBFNorm},
		{ArtifactInteractions, a.Interactions},
		{ArtifactItemFeatures, a.Items},
		{ArtifactSVDModel, a.SVD},
		{ArtifactScalers, &a.Scalers},
	}
	for _, p := range parts {
		data, err := store.Get(ctx, p.key)
		if err != nil {
			return nil, fmt.Errorf("failed to load artifact %q: %w", p.key, err)
		}
		if err := decodeArtifact(data, p.value); err != nil {
			return nil, fmt.Errorf("failed to decode artifact %q: %w", p.key, err)
		}
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Artifacts) validate() error {
	rows, cols := a.Interactions.Rows(), a.Interactions.Cols()
	if a.CFNorm.Rows() != rows || a.CFNorm.Cols() != cols {
		return fmt.Errorf("artifact shape mismatch: cf %dx%d vs interactions %dx%d",
			a.CFNorm.Rows(), a.CFNorm.Cols(), rows, cols)
	}
	if a.CBFNorm.Rows() != rows || a.CBFNorm.Cols() != cols {
		return fmt.Errorf("artifact shape mismatch: cbf %dx%d vs interactions %dx%d",
			a.CBFNorm.Rows(), a.CBFNorm.Cols(), rows, cols)
	}
	if len(a.Items.ProductIDs) != cols {
		return fmt.Errorf("artifact shape mismatch: item table has %d products, interactions %d",
			len(a.Items.ProductIDs), cols)
	}
	return nil
}

func encodeArtifact(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeArtifact(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

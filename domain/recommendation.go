package domain

// RecommendedProduct is one enriched entry of a recommendation response,
// ordered by descending score. Score is the hybrid score for user
// recommendations, the cosine similarity for similar-item lookups, and the
// total quantity sold for the cold-start best-seller fallback.
type RecommendedProduct struct {
	ProductID   uint64  `json:"product_id"`
	Score       float64 `json:"score"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Status      string  `json:"status,omitempty"`
	Price       float64 `json:"price"`
}

package domain

// Interaction is one purchase event: order_items joined to orders. Multiple
// rows for the same (user, product) pair are summed when the interaction
// matrix is built, never overwritten.
type Interaction struct {
	UserID    uint64  `gorm:"column:user_id"`
	ProductID uint64  `gorm:"column:product_id"`
	Quantity  float64 `gorm:"column:quantity"`
}

package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/hkk4567/webbanhang/domain"
)

type InteractionRepository struct {
	DB *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{
		DB: db,
	}
}

// FindAll returns every purchase event as (user, product, quantity) rows.
// Order items keep a NULL product_id after a product is deleted; those rows
// carry no signal and are filtered out here rather than downstream.
func (r *InteractionRepository) FindAll(ctx context.Context) ([]domain.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var events []domain.Interaction
	err := r.DB.WithContext(ctx).
		Model(&domain.OrderItem{}).
		Select("orders.user_id, order_items.product_id, order_items.quantity").
		Joins("JOIN orders ON order_items.order_id = orders.id").
		Where("order_items.product_id IS NOT NULL").
		Scan(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find interactions: %w", err)
	}

	return events, nil
}

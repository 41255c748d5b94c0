package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hkk4567/webbanhang/domain"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

// FindAllWithCategory returns every product joined to its category name. The
// category stays NULL for products without one; callers decide the label.
func (r *ProductRepository) FindAllWithCategory(ctx context.Context) ([]domain.CatalogRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.CatalogRow
	err := r.DB.WithContext(ctx).
		Raw(`SELECT p.id AS product_id, p.name AS product_name, c.name AS category
		     FROM products p
		     LEFT JOIN categories c ON p.category_id = c.id`).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products with categories: %w", err)
	}

	return rows, nil
}

// FindDetailsByIDs returns display rows for the given product ids, in no
// particular order. Missing ids are simply absent from the result.
func (r *ProductRepository) FindDetailsByIDs(ctx context.Context, ids []uint64) ([]domain.ProductDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(ids) == 0 {
		return []domain.ProductDetail{}, nil
	}

	var details []domain.ProductDetail
	err := r.DB.WithContext(ctx).
		Raw(`SELECT p.id AS product_id, p.name AS product_name, c.name AS category,
		            p.description, p.image_url, p.status, p.price
		     FROM products p
		     LEFT JOIN categories c ON p.category_id = c.id
		     WHERE p.id IN ?`, ids).
		Scan(&details).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find product details: %w", err)
	}

	return details, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product
	err := r.DB.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, errors.New("product not found")
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

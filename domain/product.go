package domain

import (
	"time"
)

// CREATE TABLE products (
//     id          INT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
//     name        VARCHAR(255) NOT NULL,
//     description TEXT,
//     image_url   VARCHAR(255),
//     category_id INT UNSIGNED,
//     status      ENUM('active','inactive','out_of_stock') DEFAULT 'active',
//     price       DECIMAL(15,2) NOT NULL,
//     quantity    INT UNSIGNED DEFAULT 0,
//     created_at  DATETIME,
//     updated_at  DATETIME
// );

type Product struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(255)" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	ImageURL    string    `gorm:"column:image_url;type:varchar(255)" json:"image_url"`
	CategoryID  *uint64   `gorm:"column:category_id" json:"category_id"`
	Status      string    `gorm:"column:status;default:active" json:"status"`
	Price       float64   `gorm:"column:price;type:decimal(15,2)" json:"price"`
	Quantity    uint64    `gorm:"column:quantity" json:"quantity"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

type Category struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(100)" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

// UncategorizedLabel is the category bucket for products whose category_id is
// NULL (or whose category row was deleted). Kept in Vietnamese to match the
// labels already shown in the shop.
const UncategorizedLabel = "Chưa phân loại"

// CatalogRow is the training-time projection of products ⋈ categories.
// Category is nil when the product has no category.
type CatalogRow struct {
	ProductID   uint64  `gorm:"column:product_id"`
	ProductName string  `gorm:"column:product_name"`
	Category    *string `gorm:"column:category"`
}

// CategoryLabel maps a NULL category to the uncategorized bucket.
func (r CatalogRow) CategoryLabel() string {
	if r.Category == nil || *r.Category == "" {
		return UncategorizedLabel
	}
	return *r.Category
}

// ProductDetail is the serving-time projection used to enrich recommendation
// responses. Volatile audit fields (created_at, updated_at) are deliberately
// not part of it.
type ProductDetail struct {
	ProductID   uint64  `gorm:"column:product_id" json:"product_id"`
	ProductName string  `gorm:"column:product_name" json:"product_name"`
	Category    *string `gorm:"column:category" json:"category"`
	Description string  `gorm:"column:description" json:"description"`
	ImageURL    string  `gorm:"column:image_url" json:"image_url"`
	Status      string  `gorm:"column:status" json:"status"`
	Price       float64 `gorm:"column:price" json:"price"`
}

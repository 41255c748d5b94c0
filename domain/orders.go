package domain

import "time"

// OrderItem keeps a snapshot of the product at purchase time. ProductID is
// nullable: when a product is hard-deleted the line item survives with the
// snapshot columns only.
type OrderItem struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      uint64    `gorm:"column:order_id" json:"order_id"`
	ProductID    *uint64   `gorm:"column:product_id" json:"product_id"`
	Quantity     uint64    `gorm:"column:quantity" json:"quantity"`
	ProductName  string    `gorm:"column:product_name" json:"product_name"`
	ProductImage string    `gorm:"column:product_image" json:"product_image"`
	CategoryName string    `gorm:"column:category_name" json:"category_name"`
	ProductPrice float64   `gorm:"column:product_price;type:decimal(15,2)" json:"product_price"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         int64          `gorm:"not null" json:"price"`
	StockQuantity int64          `gorm:"not null" json:"stock_quantity"`
	IsActive      bool           `gorm:"not null;default:false" json:"is_active"`
	Images        []ProductImage `gorm:"foreignKey:ProductID" json:"images"`
	CreatedAt     time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// 商品画像（表示順はPosition昇順）
type ProductImage struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64  `gorm:"not null;index" json:"product_id"`
	URL       string `gorm:"type:varchar(1024);not null" json:"url"`
	Position  int    `gorm:"not null;default:0" json:"position"`
}

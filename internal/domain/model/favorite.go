package model

import "time"

// お気に入り。product単位のトグルではなく、ID付きレコードとして持つ
type Favorite struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index:idx_fav_user_product,unique" json:"user_id"`
	ProductID int64     `gorm:"not null;index:idx_fav_user_product,unique" json:"product_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

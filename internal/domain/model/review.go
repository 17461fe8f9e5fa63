package model

import "time"

// 商品レビュー。(user, product, order) の組で1件だけ
type Review struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index:idx_review_upo,unique" json:"user_id"`
	ProductID int64     `gorm:"not null;index:idx_review_upo,unique" json:"product_id"`
	OrderID   int64     `gorm:"not null;index:idx_review_upo,unique" json:"order_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

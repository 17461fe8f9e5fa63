package model

import "time"

// 注文明細。商品名と単価は注文時点のスナップショット。
type OrderItem struct {
	ID                  int64  `gorm:"primaryKey;autoIncrement"`
	OrderID             int64  `gorm:"not null;index"`
	ProductID           int64  `gorm:"not null;index"`
	ProductNameSnapshot string `gorm:"type:varchar(255);not null"`
	UnitPriceSnapshot   int64  `gorm:"not null"`
	Quantity            int64  `gorm:"not null"`
	CreatedAt           time.Time
}

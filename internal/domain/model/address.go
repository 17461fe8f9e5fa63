package model

import "time"

// 配送先住所
type Address struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	//宛名（名・姓）
	FirstName string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(100);not null" json:"last_name"`

	//電話番号
	PhoneNumber string `gorm:"type:varchar(30);not null" json:"phone_number"`

	//番地など
	Line1 string `gorm:"type:varchar(255);not null" json:"line1"`

	//建物名など（任意）
	Line2 string `gorm:"type:varchar(255)" json:"line2"`

	//地域
	Region string `gorm:"type:varchar(100);not null" json:"region"`

	//市区町村
	City string `gorm:"type:varchar(255);not null" json:"city"`

	//このユーザーのデフォルト住所か（userごとに1件だけtrue）
	IsDefault bool `gorm:"not null;default:false" json:"is_default"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", orderID).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64, q repo.OrderListQuery) ([]model.Order, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Order{}).Where("user_id = ?", userID)

	//status 絞り込み
	if q.Status != "" {
		base = base.Where("status = ?", q.Status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return []model.Order{}, 0, err
	}

	var items []model.Order
	err := base.
		Preload("Items").
		Order("id desc").
		Limit(q.Limit).
		Offset(q.Skip).
		Find(&items).Error
	if err != nil {
		return []model.Order{}, 0, err
	}

	return items, total, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (model.Order, error) {
	//ItemsはAssociationで一緒に入る
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	values := map[string]interface{}{"status": status}
	//deliveredになった時刻を残す
	if status == model.OrderStatusDelivered {
		values["completed_at"] = time.Now()
	}

	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(values)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) IsDeliveredWithProduct(ctx context.Context, orderID, userID, productID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.id = ? AND orders.user_id = ? AND orders.status = ? AND order_items.product_id = ?",
			orderID, userID, model.OrderStatusDelivered, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

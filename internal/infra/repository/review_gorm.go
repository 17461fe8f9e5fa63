package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type reviewGormRepository struct {
	db *gorm.DB
}

// DI
func NewReviewGormRepository(db *gorm.DB) repo.ReviewRepository {
	return &reviewGormRepository{db: db}
}

func (r *reviewGormRepository) Create(ctx context.Context, review model.Review) (model.Review, error) {
	if err := r.db.WithContext(ctx).Create(&review).Error; err != nil {
		return model.Review{}, err
	}
	return review, nil
}

func (r *reviewGormRepository) ListByProductIDs(ctx context.Context, productIDs []int64) ([]model.Review, error) {
	if len(productIDs) == 0 {
		return []model.Review{}, nil
	}

	var list []model.Review
	if err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reviewGormRepository) ExistsByUserProductOrder(ctx context.Context, userID, productID, orderID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("user_id = ? AND product_id = ? AND order_id = ?", userID, productID, orderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type favoriteGormRepository struct {
	db *gorm.DB
}

// DI
func NewFavoriteGormRepository(db *gorm.DB) repo.FavoriteRepository {
	return &favoriteGormRepository{db: db}
}

func (r *favoriteGormRepository) Create(ctx context.Context, fav model.Favorite) (model.Favorite, error) {
	if err := r.db.WithContext(ctx).Create(&fav).Error; err != nil {
		return model.Favorite{}, err
	}
	return fav, nil
}

func (r *favoriteGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Favorite, error) {
	var list []model.Favorite
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *favoriteGormRepository) FindByID(ctx context.Context, favoriteID int64) (model.Favorite, error) {
	var f model.Favorite
	err := r.db.WithContext(ctx).First(&f, favoriteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Favorite{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Favorite{}, err
	}
	return f, nil
}

func (r *favoriteGormRepository) DeleteByID(ctx context.Context, favoriteID int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", favoriteID).
		Delete(&model.Favorite{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *favoriteGormRepository) ExistsByUserAndProduct(ctx context.Context, userID, productID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

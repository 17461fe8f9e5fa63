package repository

import (
	"app/internal/domain/model"
	"context"
)

// お気に入りの保存・取得を約束
type FavoriteRepository interface {
	Create(ctx context.Context, fav model.Favorite) (model.Favorite, error)

	//ユーザーのお気に入り一覧
	ListByUserID(ctx context.Context, userID int64) ([]model.Favorite, error)

	FindByID(ctx context.Context, favoriteID int64) (model.Favorite, error)

	DeleteByID(ctx context.Context, favoriteID int64) error

	//同じ(user, product)がすでにあるか
	ExistsByUserAndProduct(ctx context.Context, userID, productID int64) (bool, error)
}

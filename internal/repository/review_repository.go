package repository

import (
	"app/internal/domain/model"
	"context"
)

// レビューの保存・取得を約束
type ReviewRepository interface {
	Create(ctx context.Context, review model.Review) (model.Review, error)

	//商品IDの集合に紐づくレビューをまとめて返す（注文一覧への埋め込み用）
	ListByProductIDs(ctx context.Context, productIDs []int64) ([]model.Review, error)

	//同じ(user, product, order)のレビューがすでにあるか
	ExistsByUserProductOrder(ctx context.Context, userID, productID, orderID int64) (bool, error)
}

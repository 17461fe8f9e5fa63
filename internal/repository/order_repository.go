package repository

import (
	"context"

	"app/internal/domain/model"
)

// 注文一覧の検索条件。statusが空なら全ステータス
type OrderListQuery struct {
	Status string
	Limit  int
	Skip   int
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//明細(Items)込みで一覧を返す。戻り値2つ目は絞り込み後の総件数
	ListByUserID(ctx context.Context, userID int64, q OrderListQuery) ([]model.Order, int64, error)

	//明細込みで作成し、採番済みの注文を返す
	Create(ctx context.Context, order model.Order) (model.Order, error)

	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	//(orderID, userID)の注文がdelivered済みで、その商品を含むか
	IsDeliveredWithProduct(ctx context.Context, orderID, userID, productID int64) (bool, error)
}

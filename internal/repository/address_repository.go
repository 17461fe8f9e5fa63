package repository

import (
	"app/internal/domain/model"
	"context"
)

// 住所(Address)を保存・取得する窓口
type AddressRepository interface {
	//Create は住所を新規作成する。
	//is_defaultがtrueなら、同一ユーザーの他住所のフラグを同一Txで落とす
	Create(ctx context.Context, address model.Address) (model.Address, error)

	//ユーザーが持つ住所一覧を返す
	ListByUserID(ctx context.Context, userID int64) ([]model.Address, error)

	//住所IDから住所を1件取得
	FindByID(ctx context.Context, addressID int64) (model.Address, error)

	//住所の更新。is_defaultの伝播ルールはCreateと同じ
	Update(ctx context.Context, address model.Address) (model.Address, error)

	//住所の削除。
	Delete(ctx context.Context, addressID int64) error

	//住所がそのユーザーのものかを確認
	IsOwnedByUser(ctx context.Context, addressID, userID int64) (bool, error)

	//その住所を参照している注文があるか（削除可否の判定に使う）
	IsReferencedByOrder(ctx context.Context, addressID int64) (bool, error)
}

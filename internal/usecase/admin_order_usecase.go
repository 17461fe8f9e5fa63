package usecase

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AdminOrderStatusRequest struct {
	Status string `json:"status"`
}

type AdminOrderUsecase struct {
	orders repo.OrderRepository
}

func NewAdminOrderUsecase(orders repo.OrderRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{orders: orders}
}

// UpdateStatus は注文ステータスの変更（管理者のみ）。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, orderID int64, req AdminOrderStatusRequest) (OrderDTO, error) {
	if orderID <= 0 {
		return OrderDTO{}, ErrValidation
	}
	if !model.ValidOrderStatus(req.Status) {
		return OrderDTO{}, ErrValidation
	}

	if err := u.orders.UpdateStatus(ctx, orderID, model.OrderStatus(req.Status)); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return OrderDTO{}, ErrNotFound
		}
		return OrderDTO{}, ErrInternal
	}

	updated, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return OrderDTO{}, ErrInternal
	}

	return toOrderDTO(&updated, nil), nil
}

package usecase

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type OrderItemDTO struct {
	ID        int64       `json:"id"`
	ProductID int64       `json:"product_id"`
	Name      string      `json:"name"`
	UnitPrice int64       `json:"unit_price"`
	Quantity  int64       `json:"quantity"`
	Product   *ProductDTO `json:"product,omitempty"`
}

type OrderDTO struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"user_id"`
	AddressID   int64          `json:"address_id"`
	Status      string         `json:"status"`
	TotalPrice  int64          `json:"total_price"`
	DeliveryFee int64          `json:"delivery_fee"`
	CompletedAt *string        `json:"completed_at"`
	Items       []OrderItemDTO `json:"order_items"`
	CreatedAt   string         `json:"created_at"`
}

// OASの PaginatedOrderResponse に合わせる
type PaginatedOrdersDTO struct {
	Items []OrderDTO `json:"items"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
	Pages int        `json:"pages"`
}

type OrderListInput struct {
	Status string
	Limit  int
	Skip   int
}

type PlaceOrderLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type PlaceOrderRequest struct {
	AddressID   int64            `json:"address_id"`
	DeliveryFee int64            `json:"delivery_fee"`
	Items       []PlaceOrderLine `json:"items"`
}

type OrderUsecase struct {
	orders    repo.OrderRepository
	products  repo.ProductRepository
	reviews   repo.ReviewRepository
	addresses repo.AddressRepository
	txManager repo.TransactionManager
}

func NewOrderUsecase(
	orders repo.OrderRepository,
	products repo.ProductRepository,
	reviews repo.ReviewRepository,
	addresses repo.AddressRepository,
	txManager repo.TransactionManager,
) *OrderUsecase {
	return &OrderUsecase{
		orders:    orders,
		products:  products,
		reviews:   reviews,
		addresses: addresses,
		txManager: txManager,
	}
}

// List はユーザーの注文一覧（明細・商品・レビュー込み）を返す。
func (u *OrderUsecase) List(ctx context.Context, userID int64, in OrderListInput) (PaginatedOrdersDTO, error) {
	if userID <= 0 {
		return PaginatedOrdersDTO{}, ErrUnauthorized
	}
	if in.Status != "" && !model.ValidOrderStatus(in.Status) {
		return PaginatedOrdersDTO{}, ErrValidation
	}
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 10
	}
	if in.Skip < 0 {
		in.Skip = 0
	}

	orders, total, err := u.orders.ListByUserID(ctx, userID, repo.OrderListQuery{
		Status: in.Status,
		Limit:  in.Limit,
		Skip:   in.Skip,
	})
	if err != nil {
		return PaginatedOrdersDTO{}, ErrInternal
	}

	//明細に出てくる商品IDを集める
	productIDs := make([]int64, 0)
	seen := map[int64]bool{}
	for i := range orders {
		for _, it := range orders[i].Items {
			if !seen[it.ProductID] {
				seen[it.ProductID] = true
				productIDs = append(productIDs, it.ProductID)
			}
		}
	}

	//商品ごとのレビューをまとめて引いて埋め込む
	reviews, err := u.reviews.ListByProductIDs(ctx, productIDs)
	if err != nil {
		return PaginatedOrdersDTO{}, ErrInternal
	}
	reviewsByProduct := map[int64][]ReviewDTO{}
	for i := range reviews {
		r := toReviewDTO(&reviews[i])
		reviewsByProduct[r.ProductID] = append(reviewsByProduct[r.ProductID], r)
	}

	products := map[int64]*ProductDTO{}
	for _, id := range productIDs {
		p, err := u.products.FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return PaginatedOrdersDTO{}, ErrInternal
		}
		dto := toProductDTO(&p)
		dto.Reviews = reviewsByProduct[p.ID]
		products[p.ID] = &dto
	}

	items := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		items = append(items, toOrderDTO(&orders[i], products))
	}

	pages := 0
	if in.Limit > 0 {
		pages = int((total + int64(in.Limit) - 1) / int64(in.Limit))
	}
	page := in.Skip/in.Limit + 1

	return PaginatedOrdersDTO{
		Items: items,
		Total: total,
		Page:  page,
		Limit: in.Limit,
		Pages: pages,
	}, nil
}

// Place は注文確定。在庫減算と注文作成を同一Txで行う。
func (u *OrderUsecase) Place(ctx context.Context, userID int64, req PlaceOrderRequest) (OrderDTO, error) {
	if userID <= 0 {
		return OrderDTO{}, ErrUnauthorized
	}
	if req.AddressID <= 0 || len(req.Items) == 0 {
		return OrderDTO{}, ErrValidation
	}
	if req.DeliveryFee < 0 {
		return OrderDTO{}, ErrValidation
	}
	for _, line := range req.Items {
		if line.ProductID <= 0 || line.Quantity < 1 {
			return OrderDTO{}, ErrValidation
		}
	}

	//住所所有チェック
	owned, err := u.addresses.IsOwnedByUser(ctx, req.AddressID, userID)
	if err != nil {
		return OrderDTO{}, ErrInternal
	}
	if !owned {
		return OrderDTO{}, ErrValidation
	}

	var created model.Order

	txErr := u.txManager.WithinTx(ctx, func(r repo.TxRepos) error {
		order := model.Order{
			UserID:      userID,
			AddressID:   req.AddressID,
			Status:      model.OrderStatusPending,
			DeliveryFee: req.DeliveryFee,
		}

		var total int64
		for _, line := range req.Items {
			p, err := r.Products().FindByID(ctx, line.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return ErrValidation
			}
			if err != nil {
				return err
			}
			if !p.IsActive {
				return ErrValidation
			}

			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, p.ID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return ErrStockExceeded
			}

			order.Items = append(order.Items, model.OrderItem{
				ProductID:           p.ID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   p.Price,
				Quantity:            line.Quantity,
			})
			total += p.Price * line.Quantity
		}

		order.TotalPrice = total + req.DeliveryFee

		saved, err := r.Orders().Create(ctx, order)
		if err != nil {
			return err
		}

		//在庫調整の履歴も同一Txで残す
		for _, it := range saved.Items {
			orderID := saved.ID
			adj := model.InventoryAdjustment{
				ProductID: it.ProductID,
				OrderID:   &orderID,
				Delta:     -it.Quantity,
				Reason:    "order placed",
			}
			if err := r.Inventory().CreateAdjustment(ctx, adj); err != nil {
				return err
			}
		}

		created = saved
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, ErrValidation) || errors.Is(txErr, ErrStockExceeded) {
			return OrderDTO{}, txErr
		}
		return OrderDTO{}, ErrInternal
	}

	return toOrderDTO(&created, nil), nil
}

func toOrderDTO(o *model.Order, products map[int64]*ProductDTO) OrderDTO {
	dto := OrderDTO{
		ID:          o.ID,
		UserID:      o.UserID,
		AddressID:   o.AddressID,
		Status:      string(o.Status),
		TotalPrice:  o.TotalPrice,
		DeliveryFee: o.DeliveryFee,
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
		Items:       make([]OrderItemDTO, 0, len(o.Items)),
	}
	if o.CompletedAt != nil {
		s := o.CompletedAt.Format(time.RFC3339)
		dto.CompletedAt = &s
	}
	for _, it := range o.Items {
		item := OrderItemDTO{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			UnitPrice: it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
		}
		if products != nil {
			item.Product = products[it.ProductID]
		}
		dto.Items = append(dto.Items, item)
	}
	return dto
}

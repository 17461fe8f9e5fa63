package usecase

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ReviewDTO struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	ProductID int64  `json:"product_id"`
	OrderID   int64  `json:"order_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

type ReviewCreateRequest struct {
	ProductID int64  `json:"product_id"`
	OrderID   int64  `json:"order_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type ReviewUsecase struct {
	reviews repo.ReviewRepository
	orders  repo.OrderRepository
}

func NewReviewUsecase(reviews repo.ReviewRepository, orders repo.OrderRepository) *ReviewUsecase {
	return &ReviewUsecase{reviews: reviews, orders: orders}
}

// Create はレビュー投稿。(user, product, order)の組で1件だけ。
func (u *ReviewUsecase) Create(ctx context.Context, userID int64, req ReviewCreateRequest) (ReviewDTO, error) {
	if userID <= 0 {
		return ReviewDTO{}, ErrUnauthorized
	}
	if req.ProductID <= 0 || req.OrderID <= 0 {
		return ReviewDTO{}, ErrValidation
	}
	if req.Rating < 1 || req.Rating > 5 {
		return ReviewDTO{}, ErrValidation
	}

	//delivered済みの自分の注文で、その商品を買っていること
	ok, err := u.orders.IsDeliveredWithProduct(ctx, req.OrderID, userID, req.ProductID)
	if err != nil {
		return ReviewDTO{}, ErrInternal
	}
	if !ok {
		return ReviewDTO{}, ErrValidation
	}

	//同じ(user, product, order)の二重投稿は409
	exists, err := u.reviews.ExistsByUserProductOrder(ctx, userID, req.ProductID, req.OrderID)
	if err != nil {
		return ReviewDTO{}, ErrInternal
	}
	if exists {
		return ReviewDTO{}, ErrConflict
	}

	created, err := u.reviews.Create(ctx, model.Review{
		UserID:    userID,
		ProductID: req.ProductID,
		OrderID:   req.OrderID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return ReviewDTO{}, ErrInternal
	}

	return toReviewDTO(&created), nil
}

func toReviewDTO(r *model.Review) ReviewDTO {
	return ReviewDTO{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		OrderID:   r.OrderID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}

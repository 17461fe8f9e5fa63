package unit

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReviewCreate_OK(t *testing.T) {
	reviews := new(ReviewRepoMock)
	orders := new(OrderRepoMock)
	uc := usecase.NewReviewUsecase(reviews, orders)

	orders.On("IsDeliveredWithProduct", mock.Anything, int64(100), int64(1), int64(7)).Return(true, nil)
	reviews.On("ExistsByUserProductOrder", mock.Anything, int64(1), int64(7), int64(100)).Return(false, nil)
	reviews.On("Create", mock.Anything, mock.MatchedBy(func(r model.Review) bool {
		return r.UserID == 1 && r.ProductID == 7 && r.OrderID == 100 && r.Rating == 4
	})).Return(model.Review{ID: 9, UserID: 1, ProductID: 7, OrderID: 100, Rating: 4, Comment: "good"}, nil)

	got, err := uc.Create(context.Background(), 1, usecase.ReviewCreateRequest{
		ProductID: 7, OrderID: 100, Rating: 4, Comment: "good",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)
	reviews.AssertExpectations(t)
}

// delivered済みの自分の注文でなければ投稿できない
func TestReviewCreate_NotDelivered(t *testing.T) {
	reviews := new(ReviewRepoMock)
	orders := new(OrderRepoMock)
	uc := usecase.NewReviewUsecase(reviews, orders)

	orders.On("IsDeliveredWithProduct", mock.Anything, int64(100), int64(1), int64(7)).Return(false, nil)

	_, err := uc.Create(context.Background(), 1, usecase.ReviewCreateRequest{
		ProductID: 7, OrderID: 100, Rating: 4,
	})
	assert.ErrorIs(t, err, usecase.ErrValidation)
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 同じ(user, product, order)の二重投稿は409
func TestReviewCreate_DuplicateIsConflict(t *testing.T) {
	reviews := new(ReviewRepoMock)
	orders := new(OrderRepoMock)
	uc := usecase.NewReviewUsecase(reviews, orders)

	orders.On("IsDeliveredWithProduct", mock.Anything, int64(100), int64(1), int64(7)).Return(true, nil)
	reviews.On("ExistsByUserProductOrder", mock.Anything, int64(1), int64(7), int64(100)).Return(true, nil)

	_, err := uc.Create(context.Background(), 1, usecase.ReviewCreateRequest{
		ProductID: 7, OrderID: 100, Rating: 4,
	})
	assert.ErrorIs(t, err, usecase.ErrConflict)
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewCreate_RatingOutOfRange(t *testing.T) {
	uc := usecase.NewReviewUsecase(new(ReviewRepoMock), new(OrderRepoMock))

	for _, rating := range []int{0, 6, -1} {
		_, err := uc.Create(context.Background(), 1, usecase.ReviewCreateRequest{
			ProductID: 7, OrderID: 100, Rating: rating,
		})
		assert.ErrorIs(t, err, usecase.ErrValidation, "rating=%d", rating)
	}
}

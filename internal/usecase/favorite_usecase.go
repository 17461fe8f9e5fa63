package usecase

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type FavoriteDTO struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
}

type FavoriteCreateRequest struct {
	ProductID int64 `json:"product_id"`
}

type FavoriteUsecase struct {
	favorites repo.FavoriteRepository
	products  repo.ProductRepository
}

func NewFavoriteUsecase(favorites repo.FavoriteRepository, products repo.ProductRepository) *FavoriteUsecase {
	return &FavoriteUsecase{favorites: favorites, products: products}
}

func (u *FavoriteUsecase) List(ctx context.Context, userID int64) ([]FavoriteDTO, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}

	list, err := u.favorites.ListByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]FavoriteDTO, 0, len(list))
	for i := range list {
		out = append(out, toFavoriteDTO(&list[i]))
	}
	return out, nil
}

func (u *FavoriteUsecase) Add(ctx context.Context, userID int64, req FavoriteCreateRequest) (FavoriteDTO, error) {
	if userID <= 0 {
		return FavoriteDTO{}, ErrUnauthorized
	}
	if req.ProductID <= 0 {
		return FavoriteDTO{}, ErrValidation
	}

	//商品チェック（公開のみ）
	p, err := u.products.FindByID(ctx, req.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return FavoriteDTO{}, ErrValidation
	}
	if err != nil {
		return FavoriteDTO{}, ErrInternal
	}
	if !p.IsActive {
		return FavoriteDTO{}, ErrValidation
	}

	//同じ(user, product)の二重登録は409
	exists, err := u.favorites.ExistsByUserAndProduct(ctx, userID, req.ProductID)
	if err != nil {
		return FavoriteDTO{}, ErrInternal
	}
	if exists {
		return FavoriteDTO{}, ErrConflict
	}

	created, err := u.favorites.Create(ctx, model.Favorite{
		UserID:    userID,
		ProductID: req.ProductID,
	})
	if err != nil {
		return FavoriteDTO{}, ErrInternal
	}

	return toFavoriteDTO(&created), nil
}

func (u *FavoriteUsecase) Remove(ctx context.Context, userID int64, favoriteID int64) error {
	if userID <= 0 {
		return ErrUnauthorized
	}
	if favoriteID <= 0 {
		return ErrValidation
	}

	fav, err := u.favorites.FindByID(ctx, favoriteID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return ErrInternal
	}

	//本人のものだけ消せる
	if fav.UserID != userID {
		return ErrForbidden
	}

	if err := u.favorites.DeleteByID(ctx, favoriteID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

func toFavoriteDTO(f *model.Favorite) FavoriteDTO {
	return FavoriteDTO{
		ID:        f.ID,
		UserID:    f.UserID,
		ProductID: f.ProductID,
	}
}

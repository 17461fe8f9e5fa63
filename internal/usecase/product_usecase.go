package usecase

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ProductDTO struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Price         int64       `json:"price"`
	StockQuantity int64       `json:"stock_quantity"`
	ImageURLs     []string    `json:"image_urls"`
	Reviews       []ReviewDTO `json:"reviews,omitempty"`
}

type PaginatedProductsDTO struct {
	Items []ProductDTO `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type ProductListInput struct {
	Page  int
	Limit int
	Q     string
}

// 管理者の商品登録
type ProductCreateRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         int64    `json:"price"`
	StockQuantity int64    `json:"stock_quantity"`
	ImageURLs     []string `json:"image_urls"`
}

type ProductUsecase struct {
	products repo.ProductRepository
	reviews  repo.ReviewRepository
}

func NewProductUsecase(products repo.ProductRepository, reviews repo.ReviewRepository) *ProductUsecase {
	return &ProductUsecase{products: products, reviews: reviews}
}

func (u *ProductUsecase) ListPublic(ctx context.Context, in ProductListInput) (PaginatedProductsDTO, error) {
	items, total, err := u.products.ListPublic(ctx, repo.ProductListQuery{
		Page:  in.Page,
		Limit: in.Limit,
		Q:     in.Q,
	})
	if err != nil {
		return PaginatedProductsDTO{}, ErrInternal
	}

	out := make([]ProductDTO, 0, len(items))
	for i := range items {
		out = append(out, toProductDTO(&items[i]))
	}

	page := in.Page
	if page <= 0 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	return PaginatedProductsDTO{
		Items: out,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// GetByID は商品詳細（レビュー込み）
func (u *ProductUsecase) GetByID(ctx context.Context, productID int64) (ProductDTO, error) {
	if productID <= 0 {
		return ProductDTO{}, ErrValidation
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductDTO{}, ErrNotFound
	}
	if err != nil {
		return ProductDTO{}, ErrInternal
	}
	if !p.IsActive {
		return ProductDTO{}, ErrNotFound
	}

	dto := toProductDTO(&p)

	reviews, err := u.reviews.ListByProductIDs(ctx, []int64{p.ID})
	if err != nil {
		return ProductDTO{}, ErrInternal
	}
	for i := range reviews {
		dto.Reviews = append(dto.Reviews, toReviewDTO(&reviews[i]))
	}

	return dto, nil
}

// Create は管理者用の商品登録。
func (u *ProductUsecase) Create(ctx context.Context, req ProductCreateRequest) (ProductDTO, error) {
	if req.Name == "" || req.Price < 0 || req.StockQuantity < 0 {
		return ProductDTO{}, ErrValidation
	}

	p := model.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		IsActive:      true,
	}
	for i, url := range req.ImageURLs {
		p.Images = append(p.Images, model.ProductImage{URL: url, Position: i})
	}

	created, err := u.products.Create(ctx, p)
	if err != nil {
		return ProductDTO{}, ErrInternal
	}

	return toProductDTO(&created), nil
}

func toProductDTO(p *model.Product) ProductDTO {
	dto := ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		ImageURLs:     make([]string, 0, len(p.Images)),
	}
	for _, img := range p.Images {
		dto.ImageURLs = append(dto.ImageURLs, img.URL)
	}
	return dto
}

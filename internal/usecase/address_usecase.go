package usecase

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"

	"gorm.io/gorm"
)

type AddressDTO struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber string  `json:"phone_number"`
	Line1       string  `json:"line1"`
	Line2       string  `json:"line2"`
	Region      string  `json:"region"`
	City        string  `json:"city"`
	IsDefault   bool    `json:"is_default"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at,omitempty"`
}

type AddressCreateRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	Region      string `json:"region"`
	City        string `json:"city"`
	IsDefault   bool   `json:"is_default"`
}

type AddressUpdateRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	Region      string `json:"region"`
	City        string `json:"city"`
	IsDefault   bool   `json:"is_default"`
}

type AddressUsecase struct {
	addresses repository.AddressRepository
}

func NewAddressUsecase(addresses repository.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addresses: addresses}
}

func (u *AddressUsecase) List(ctx context.Context, userID int64) ([]AddressDTO, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}

	list, err := u.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]AddressDTO, 0, len(list))
	for i := range list {
		out = append(out, toAddressDTO(&list[i]))
	}
	return out, nil
}

func (u *AddressUsecase) Create(ctx context.Context, userID int64, req AddressCreateRequest) (AddressDTO, error) {
	if userID <= 0 {
		return AddressDTO{}, ErrUnauthorized
	}

	//入力チェック
	if req.FirstName == "" || req.LastName == "" || req.PhoneNumber == "" ||
		req.Line1 == "" || req.Region == "" || req.City == "" {
		return AddressDTO{}, ErrValidation
	}

	now := time.Now()

	a := model.Address{
		UserID:      userID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Line1:       req.Line1,
		Line2:       req.Line2,
		Region:      req.Region,
		City:        req.City,
		IsDefault:   req.IsDefault,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	//is_default=trueならrepo側が同一Txで他住所のフラグを落とす
	created, err := u.addresses.Create(ctx, a)
	if err != nil {
		return AddressDTO{}, ErrInternal
	}

	return toAddressDTO(&created), nil
}

func (u *AddressUsecase) Update(ctx context.Context, userID int64, addressID int64, req AddressUpdateRequest) (AddressDTO, error) {
	if userID <= 0 {
		return AddressDTO{}, ErrUnauthorized
	}
	if addressID <= 0 {
		return AddressDTO{}, ErrValidation
	}
	if req.FirstName == "" || req.LastName == "" || req.PhoneNumber == "" ||
		req.Line1 == "" || req.Region == "" || req.City == "" {
		return AddressDTO{}, ErrValidation
	}

	//所有チェック（本人のみ）
	owned, err := u.addresses.IsOwnedByUser(ctx, addressID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AddressDTO{}, ErrNotFound
		}
		return AddressDTO{}, ErrInternal
	}
	if !owned {
		return AddressDTO{}, ErrNotFound
	}

	a := model.Address{
		ID:          addressID,
		UserID:      userID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Line1:       req.Line1,
		Line2:       req.Line2,
		Region:      req.Region,
		City:        req.City,
		IsDefault:   req.IsDefault,
		UpdatedAt:   time.Now(),
	}

	updated, err := u.addresses.Update(ctx, a)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AddressDTO{}, ErrNotFound
		}
		return AddressDTO{}, ErrInternal
	}

	return toAddressDTO(&updated), nil
}

func (u *AddressUsecase) Delete(ctx context.Context, userID int64, addressID int64) error {
	if userID <= 0 {
		return ErrUnauthorized
	}
	if addressID <= 0 {
		return ErrValidation
	}

	owned, err := u.addresses.IsOwnedByUser(ctx, addressID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	if !owned {
		return ErrNotFound
	}

	//注文が参照中の住所は消せない 409
	referenced, err := u.addresses.IsReferencedByOrder(ctx, addressID)
	if err != nil {
		return ErrInternal
	}
	if referenced {
		return ErrConflict
	}

	if err := u.addresses.Delete(ctx, addressID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	return nil
}

// SetDefault は「現在の内容のままis_defaultだけtrue」のUpdate
func (u *AddressUsecase) SetDefault(ctx context.Context, userID int64, addressID int64) (AddressDTO, error) {
	if userID <= 0 {
		return AddressDTO{}, ErrUnauthorized
	}
	if addressID <= 0 {
		return AddressDTO{}, ErrValidation
	}

	owned, err := u.addresses.IsOwnedByUser(ctx, addressID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AddressDTO{}, ErrNotFound
		}
		return AddressDTO{}, ErrInternal
	}
	if !owned {
		return AddressDTO{}, ErrNotFound
	}

	current, err := u.addresses.FindByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AddressDTO{}, ErrNotFound
		}
		return AddressDTO{}, ErrInternal
	}

	current.IsDefault = true
	current.UpdatedAt = time.Now()

	//userごとにdefaultは1つ（repoが同一Txで切り替える）
	updated, err := u.addresses.Update(ctx, current)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AddressDTO{}, ErrNotFound
		}
		return AddressDTO{}, ErrInternal
	}

	return toAddressDTO(&updated), nil
}

func toAddressDTO(a *model.Address) AddressDTO {
	dto := AddressDTO{
		ID:          a.ID,
		UserID:      a.UserID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		PhoneNumber: a.PhoneNumber,
		Line1:       a.Line1,
		Line2:       a.Line2,
		Region:      a.Region,
		City:        a.City,
		IsDefault:   a.IsDefault,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
	t := a.UpdatedAt.Format(time.RFC3339)
	dto.UpdatedAt = &t
	return dto
}

package repository

import (
	"app/internal/domain/model"
	"context"
)

// リフレッシュトークンの保存・取得・削除
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	DeleteByID(ctx context.Context, tokenID string) error
	DeleteAllByUserID(ctx context.Context, userID int64) error
}

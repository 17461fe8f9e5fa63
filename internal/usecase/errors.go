package usecase

import "errors"

var (
	//400 入力不足
	ErrValidation = errors.New("validation error")
	//401 認証失敗
	ErrUnauthorized = errors.New("unauthorized")
	//403 権限
	ErrForbidden = errors.New("forbidden")
	//404 見つからない
	ErrNotFound = errors.New("not found")
	//409 競合（注文が参照中の住所削除・重複レビューなど）
	ErrConflict = errors.New("conflict")
	//400 在庫不足
	ErrStockExceeded = errors.New("stock exceeded")
	//500
	ErrInternal = errors.New("internal error")
)

package store

import "errors"

// 在庫上限を超える追加/増加はこのsentinelで呼び出し元に返す。
// 状態は一切変化しない（部分適用なし）。
var ErrStockExceeded = errors.New("stock exceeded")

// 未ログインでセッション必須の操作を呼んだ場合。
var ErrNotAuthenticated = errors.New("not authenticated")

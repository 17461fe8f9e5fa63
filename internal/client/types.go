package client

// サーバAPIのレスポンス/リクエストの型

type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type AccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type LoginResponse struct {
	User  User        `json:"user"`
	Token AccessToken `json:"token"`
}

type RegisterResponse struct {
	User User `json:"user"`
}

type Review struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	ProductID int64  `json:"product_id"`
	OrderID   int64  `json:"order_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         int64    `json:"price"`
	StockQuantity int64    `json:"stock_quantity"`
	ImageURLs     []string `json:"image_urls"`
	Reviews       []Review `json:"reviews,omitempty"`
}

type PaginatedProducts struct {
	Items []Product `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

type Address struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	Region      string `json:"region"`
	City        string `json:"city"`
	IsDefault   bool   `json:"is_default"`
}

// 住所の作成/更新ペイロード
type AddressInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	Region      string `json:"region"`
	City        string `json:"city"`
	IsDefault   bool   `json:"is_default"`
}

type Favorite struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
}

type OrderItem struct {
	ID        int64    `json:"id"`
	ProductID int64    `json:"product_id"`
	Name      string   `json:"name"`
	UnitPrice int64    `json:"unit_price"`
	Quantity  int64    `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

type Order struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"user_id"`
	AddressID   int64       `json:"address_id"`
	Status      string      `json:"status"`
	TotalPrice  int64       `json:"total_price"`
	DeliveryFee int64       `json:"delivery_fee"`
	CompletedAt *string     `json:"completed_at"`
	Items       []OrderItem `json:"order_items"`
	CreatedAt   string      `json:"created_at"`
}

type PaginatedOrders struct {
	Items []Order `json:"items"`
	Total int64   `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
	Pages int     `json:"pages"`
}

type OrderLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type PlaceOrderInput struct {
	AddressID   int64       `json:"address_id"`
	DeliveryFee int64       `json:"delivery_fee"`
	Items       []OrderLine `json:"items"`
}

type ReviewInput struct {
	ProductID int64  `json:"product_id"`
	OrderID   int64  `json:"order_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// OrderQuery は GET /orders のクエリ
type OrderQuery struct {
	Status string
	Limit  int
	Skip   int
}

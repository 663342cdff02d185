package transport

import "github.com/Skotchmaster/shopcart/internal/models"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
}

// CartRequest is the body of both cart mutations. A missing quantity means one.
type CartRequest struct {
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
	Quantity  *int  `json:"quantity"`
}

func (r CartRequest) QuantityOrDefault(def int) int {
	if r.Quantity == nil {
		return def
	}
	return *r.Quantity
}

// Envelope is the body of every API response. Exactly one of Message and
// Error is set.
type Envelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func OK(message string, data any) Envelope {
	return Envelope{Message: message, Data: data}
}

func Fail(message string) Envelope {
	return Envelope{Error: message}
}

type LoginData struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CartLineData echoes the request. CartQuantity is what the line holds now.
type CartLineData struct {
	UserID       int64 `json:"user_id"`
	ProductID    int64 `json:"product_id"`
	Quantity     int   `json:"quantity"`
	CartQuantity int   `json:"cart_quantity"`
	Deleted      *bool `json:"deleted,omitempty"`
}

type CartDetailsData struct {
	Products []models.CartDetail `json:"products"`
	Count    int                 `json:"count"`
}

type ProductsData struct {
	Products []models.Product `json:"products"`
}

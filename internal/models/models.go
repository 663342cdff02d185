package models

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"           json:"id"`
	Username     string `gorm:"size:255;uniqueIndex;not null"      json:"username"`
	PasswordHash string `gorm:"column:password;size:255;not null"  json:"-"`
	Email        string `gorm:"size:255;not null"                  json:"email"`
	FullName     string `gorm:"column:full_name;size:255;not null" json:"full_name"`
}

type Product struct {
	ID       int64   `gorm:"primaryKey;autoIncrement"            json:"id"`
	Name     string  `gorm:"size:255;not null"                   json:"name"`
	Price    float64 `gorm:"type:numeric(10,2);not null;check:price>0" json:"price"`
	Image    string  `gorm:"size:512"                            json:"image"`
	Brand    string  `gorm:"size:255"                            json:"brand"`
	Category string  `gorm:"size:255"                            json:"category"`
}

// CartItem is one cart line. Quantity is always positive: a line that would
// drop to zero is deleted instead.
type CartItem struct {
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"      json:"user_id"`
	ProductID int64 `gorm:"primaryKey;autoIncrement:false"      json:"product_id"`
	Quantity  int   `gorm:"not null;default:1;check:quantity>0" json:"quantity"`
}

// CartDetail is a cart line joined with its product.
type CartDetail struct {
	ProductID  int64   `json:"product_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Image      string  `json:"image"`
	Brand      string  `json:"brand"`
	Category   string  `json:"category"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

func (User) TableName() string     { return "users" }
func (Product) TableName() string  { return "products" }
func (CartItem) TableName() string { return "cart_items" }

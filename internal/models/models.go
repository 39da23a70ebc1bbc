package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

const (
	ProviderLocal    = "local"
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
	StatusRefunded   = "refunded"
	StatusCompleted  = "completed"
)

const (
	PaymentStripe   = "stripe"
	PaymentPayPal   = "paypal"
	PaymentRazorpay = "razorpay"
	PaymentCOD      = "cod"
)

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type User struct {
	ID                    uint       `gorm:"primaryKey;autoIncrement"      json:"id"`
	Email                 string     `gorm:"uniqueIndex;not null"          json:"email"`
	PasswordHash          string     `gorm:""                              json:"-"`
	FirstName             string     `gorm:""                              json:"first_name"`
	LastName              string     `gorm:""                              json:"last_name"`
	Phone                 string     `gorm:""                              json:"phone"`
	Role                  string     `gorm:"not null;default:user"         json:"role"`
	Provider              string     `gorm:"not null;default:local"        json:"provider"`
	ProviderID            string     `gorm:"index"                         json:"-"`
	Avatar                string     `gorm:""                              json:"avatar"`
	IsEmailVerified       bool       `gorm:"default:false"                 json:"is_email_verified"`
	VerificationToken     string     `gorm:""                              json:"-"`
	VerificationExpiresAt *time.Time `gorm:""                              json:"-"`
	ResetToken            string     `gorm:""                              json:"-"`
	ResetExpiresAt        *time.Time `gorm:""                              json:"-"`
	LastLoginAt           *time.Time `gorm:""                              json:"last_login_at"`
	IsActive              bool       `gorm:"default:true"                  json:"is_active"`
	Address               Address    `gorm:"embedded;embeddedPrefix:addr_" json:"address"`
	Newsletter            bool       `gorm:"default:false"                 json:"newsletter"`
	Theme                 string     `gorm:"default:light"                 json:"theme"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// RefreshToken rows are the user's session list: one row per device/session.
// The raw token is never stored, only its sha256.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"          json:"id"`
	UserID    uint      `gorm:"index;not null"      json:"user_id"`
	TokenHash string    `gorm:"uniqueIndex;not null" json:"-"`
	JTI       string    `gorm:"uniqueIndex;not null" json:"jti"`
	ExpiresAt int64     `gorm:"not null"            json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type Cart struct {
	ID          uint       `gorm:"primaryKey"           json:"id"`
	UserID      uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	TotalAmount float64    `gorm:"not null;default:0"   json:"total_amount"`
	ItemCount   int        `gorm:"not null;default:0"   json:"item_count"`
	Items       []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID        uint    `gorm:"primaryKey"                 json:"id"`
	CartID    uint    `gorm:"index;not null"             json:"cart_id"`
	ProductID uint    `gorm:"not null"                   json:"product_id"`
	Name      string  `gorm:"not null"                   json:"name"`
	Price     float64 `gorm:"not null"                   json:"price"`
	Quantity  int     `gorm:"default:1;check:quantity>0" json:"quantity"`
	Size      string  `gorm:""                           json:"size,omitempty"`
	Color     string  `gorm:""                           json:"color,omitempty"`
	Image     string  `gorm:""                           json:"image,omitempty"`
}

type WishlistItem struct {
	ID        uint      `gorm:"primaryKey"                                      json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_wishlist_user_product;not null"  json:"user_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_wishlist_user_product;not null"  json:"product_id"`
	Name      string    `gorm:"not null"                                        json:"name"`
	Price     float64   `gorm:"not null"                                        json:"price"`
	Image     string    `gorm:""                                                json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Purchase struct {
	ID                  uint           `gorm:"primaryKey"                        json:"id"`
	UserID              uint           `gorm:"index;not null"                    json:"user_id"`
	Status              string         `gorm:"not null;default:pending"          json:"status"`
	TotalAmount         float64        `gorm:"not null"                          json:"total_amount"`
	PaymentMethod       string         `gorm:"not null"                          json:"payment_method"`
	PaymentID           string         `gorm:""                                  json:"payment_id,omitempty"`
	ShippingAddress     Address        `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	Notes               string         `gorm:""                                  json:"notes,omitempty"`
	TrackingNumber      string         `gorm:""                                  json:"tracking_number,omitempty"`
	EstimatedDeliveryAt *time.Time     `gorm:""                                  json:"estimated_delivery_at,omitempty"`
	DeliveredAt         *time.Time     `gorm:""                                  json:"delivered_at,omitempty"`
	Items               []PurchaseItem `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// PurchaseItem is a snapshot taken at purchase time, never a live product
// reference.
type PurchaseItem struct {
	ID         uint    `gorm:"primaryKey"                 json:"id"`
	PurchaseID uint    `gorm:"index;not null"             json:"purchase_id"`
	ProductID  uint    `gorm:"not null"                   json:"product_id"`
	Name       string  `gorm:"not null"                   json:"name"`
	Price      float64 `gorm:"not null"                   json:"price"`
	Quantity   int     `gorm:"default:1;check:quantity>0" json:"quantity"`
	Size       string  `gorm:""                           json:"size,omitempty"`
	Color      string  `gorm:""                           json:"color,omitempty"`
}

type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"not null"                 json:"name"`
	Description string         `gorm:"not null"                 json:"description"`
	Price       float64        `gorm:"not null"                 json:"price"`
	Category    string         `gorm:"index"                    json:"category"`
	InStock     bool           `gorm:"default:true"             json:"in_stock"`
	Featured    bool           `gorm:"default:false"            json:"featured"`
	Image       string         `gorm:""                         json:"image,omitempty"`
	Tags        pq.StringArray `gorm:"type:text[]"              json:"tags,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperadmin
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"primaryKey"                     json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"           json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"           json:"email"`
	PasswordHash string    `gorm:"column:password;not null"       json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime"                 json:"created_at"`
}

type CartItem struct {
	ID                 uuid.UUID `gorm:"primaryKey"                                           json:"id"`
	UserID             uuid.UUID `gorm:"uniqueIndex:idx_cart_user_product_size;not null"      json:"user_id"`
	User               *User     `gorm:"constraint:OnDelete:CASCADE"                          json:"-"`
	ProductID          int       `gorm:"uniqueIndex:idx_cart_user_product_size;not null"      json:"product_id"`
	ProductName        string    `gorm:"not null"                                             json:"product_name"`
	ProductPrice       string    `gorm:"not null"                                             json:"product_price"`
	ProductImage       string    `json:"product_image"`
	ProductDescription string    `json:"product_description"`
	Size               string    `gorm:"uniqueIndex:idx_cart_user_product_size;default:Medium" json:"size"`
	Quantity           int       `gorm:"not null;default:1;check:quantity>0"                  json:"quantity"`
	AddedAt            time.Time `gorm:"autoCreateTime"                                       json:"added_at"`
}

type WishlistItem struct {
	ID                 uuid.UUID `gorm:"primaryKey"                                      json:"id"`
	UserID             uuid.UUID `gorm:"uniqueIndex:idx_wishlist_user_product;not null"  json:"user_id"`
	User               *User     `gorm:"constraint:OnDelete:CASCADE"                     json:"-"`
	ProductID          int       `gorm:"uniqueIndex:idx_wishlist_user_product;not null"  json:"product_id"`
	ProductName        string    `gorm:"not null"                                        json:"product_name"`
	ProductPrice       string    `gorm:"not null"                                        json:"product_price"`
	ProductImage       string    `json:"product_image"`
	ProductDescription string    `json:"product_description"`
	AddedAt            time.Time `gorm:"autoCreateTime"                                  json:"added_at"`
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"            json:"id"`
	UserID    uuid.UUID `gorm:"index;not null"        json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Token     string    `gorm:"uniqueIndex;not null"  json:"-"`
	JTI       string    `gorm:"uniqueIndex;not null"  json:"jti"`
	ExpiresAt int64     `gorm:"not null"              json:"expires_at"`
	Revoked   bool      `gorm:"not null;default:false" json:"revoked"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (w *WishlistItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart"
}

func (WishlistItem) TableName() string {
	return "wishlist"
}

func (c CartItem) UnitPrice() string { return c.ProductPrice }

func (c CartItem) Units() int { return c.Quantity }

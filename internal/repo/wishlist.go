package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thinkcraftlab/studio/internal/catalog"
	"github.com/thinkcraftlab/studio/internal/models"
)

func (r *GormRepo) GetWishlistByUserID(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at, product_id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToWishlist stores item unless the product is already wishlisted, in
// which case item is overwritten with the existing row and created is false.
func (r *GormRepo) AddToWishlist(ctx context.Context, item *models.WishlistItem) (bool, error) {
	tx := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
		FirstOrCreate(item)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *GormRepo) RemoveFromWishlist(ctx context.Context, userID, wishlistID uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", wishlistID, userID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MoveToCart adds the wishlisted product to the cart in the default size and
// drops it from the wishlist, atomically.
func (r *GormRepo) MoveToCart(ctx context.Context, userID, wishlistID uuid.UUID) (*models.CartItem, error) {
	var cartItem models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var w models.WishlistItem
		if err := tx.Where("id = ? AND user_id = ?", wishlistID, userID).First(&w).Error; err != nil {
			return err
		}

		cartItem = models.CartItem{
			UserID:             userID,
			ProductID:          w.ProductID,
			ProductName:        w.ProductName,
			ProductPrice:       w.ProductPrice,
			ProductImage:       w.ProductImage,
			ProductDescription: w.ProductDescription,
			Size:               catalog.DefaultSize,
			Quantity:           1,
		}
		if err := addToCart(tx, &cartItem); err != nil {
			return err
		}

		return tx.Delete(&w).Error
	})
	if err != nil {
		return nil, err
	}
	return &cartItem, nil
}

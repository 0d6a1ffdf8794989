package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thinkcraftlab/studio/internal/catalog"
	"github.com/thinkcraftlab/studio/internal/models"
)

func (r *GormRepo) GetCartByUserID(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at, product_id, size").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart increments the quantity of the user's (product, size) line, or
// inserts item when there is none. On return item holds the stored row.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return addToCart(tx, item)
	})
}

func addToCart(tx *gorm.DB, item *models.CartItem) error {
	if item.Size == "" {
		item.Size = catalog.DefaultSize
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	res := tx.Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ? AND size = ?", item.UserID, item.ProductID, item.Size).
		Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return tx.Where("user_id = ? AND product_id = ? AND size = ?", item.UserID, item.ProductID, item.Size).First(item).Error
	}

	return tx.Create(item).Error
}

// UpdateCartQuantity sets the quantity of one cart line. A quantity of zero
// or less removes the line, reported by deleted=true.
func (r *GormRepo) UpdateCartQuantity(ctx context.Context, userID, cartID uuid.UUID, quantity int) (*models.CartItem, bool, error) {
	if quantity <= 0 {
		if err := r.RemoveFromCart(ctx, userID, cartID); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}

	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("id = ? AND user_id = ?", cartID, userID).
			Update("quantity", quantity)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", cartID).First(&item).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &item, false, nil
}

func (r *GormRepo) RemoveFromCart(ctx context.Context, userID, cartID uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", cartID, userID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

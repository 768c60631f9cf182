package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/merchstore/merch-store/services/db/internal/models"
)

// CreateOrder computes total_price from the product's current price inside
// the same transaction that inserts the row, so callers can never supply
// their own price.
func (r *GormRepo) CreateOrder(ctx context.Context, userID, productID uint, quantity int) (*models.Order, error) {
	var order models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}

		var product models.Product
		if err := tx.Where("id = ?", productID).First(&product).Error; err != nil {
			return err
		}

		order = models.Order{
			UserID:     userID,
			ProductID:  productID,
			Quantity:   quantity,
			TotalPrice: product.Price * float64(quantity),
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder flips canceled to true. The transition is one-way: cancelling
// an already-canceled order succeeds and leaves it canceled.
func (r *GormRepo) CancelOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&order).Error; err != nil {
			return err
		}
		if order.Canceled {
			return nil
		}
		order.Canceled = true
		return tx.Model(&order).Update("canceled", true).Error
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/merchstore/merch-store/services/db/internal/models"
	"github.com/merchstore/merch-store/services/db/internal/repo"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
)

const maxOrderQuantity = 3

type StoreService struct {
	Repo *repo.GormRepo
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}

func (s *StoreService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *StoreService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	return p, nil
}

// CreateUser treats the password hash as opaque. Username uniqueness is not
// enforced here, only by whatever constraints the store schema carries.
func (s *StoreService) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username required", ErrValidation)
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("%w: password_hash required", ErrValidation)
	}
	return s.Repo.CreateUser(ctx, username, passwordHash)
}

func (s *StoreService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	u, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

func (s *StoreService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

func (s *StoreService) UpdateUser(ctx context.Context, id uint, username string, active bool) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username required", ErrValidation)
	}
	u, err := s.Repo.UpdateUser(ctx, id, username, active)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

// CreateOrder rejects an out-of-range quantity before touching the store.
func (s *StoreService) CreateOrder(ctx context.Context, userID, productID uint, quantity int) (*models.Order, error) {
	if quantity < 1 || quantity > maxOrderQuantity {
		return nil, fmt.Errorf("%w: quantity must be between 1 and %d", ErrValidation, maxOrderQuantity)
	}

	order, err := s.Repo.CreateOrder(ctx, userID, productID, quantity)
	if err != nil {
		return nil, notFound(err, "user or product")
	}
	return order, nil
}

func (s *StoreService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	o, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order")
	}
	return o, nil
}

func (s *StoreService) CancelOrder(ctx context.Context, id uint) (*models.Order, error) {
	o, err := s.Repo.CancelOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order")
	}
	return o, nil
}

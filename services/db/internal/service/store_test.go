package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/merchstore/merch-store/services/db/internal/models"
	"github.com/merchstore/merch-store/services/db/internal/repo"
)

func newTestService(t *testing.T) *StoreService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return &StoreService{Repo: &repo.GormRepo{DB: db}}
}

func TestCreateOrder_QuantityRange(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)

	product := models.Product{Name: "hoodie", Category: "merch", Price: 10.00, Stock: 50}
	require.NoError(t, svc.Repo.DB.Create(&product).Error)

	for _, q := range []int{0, -1, 4, 100} {
		_, err := svc.CreateOrder(ctx, user.ID, product.ID, q)
		assert.ErrorIs(t, err, ErrValidation, "quantity %d", q)
	}

	// Rejected quantities must not write rows.
	var count int64
	require.NoError(t, svc.Repo.DB.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)

	for _, q := range []int{1, 2, 3} {
		order, err := svc.CreateOrder(ctx, user.ID, product.ID, q)
		require.NoError(t, err, "quantity %d", q)
		assert.Equal(t, 10.00*float64(q), order.TotalPrice)
	}
}

func TestService_NotFoundMapping(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetProduct(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetUser(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetOrder(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CancelOrder(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateUser(ctx, 404, "ghost", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateUser_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "", "hash")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateUser(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrValidation)

	// Duplicate usernames are deliberately not rejected at this layer.
	_, err = svc.CreateUser(ctx, "alice", "h1")
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, "alice", "h2")
	require.NoError(t, err)
}

package repo

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/merchstore/merch-store/services/db/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	// Shared-cache in-memory DB so that the bounded pool's connections all
	// see the same data, like the postgres pool in production.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, Migrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })

	return &GormRepo{DB: db}
}

func seedProduct(t *testing.T, r *GormRepo, name string, price float64) models.Product {
	t.Helper()
	p := models.Product{Name: name, Category: "merch", Price: price, Stock: 100}
	require.NoError(t, r.DB.Create(&p).Error)
	return p
}

func TestProducts_ListAndGet(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	first := seedProduct(t, r, "hoodie", 35.50)
	second := seedProduct(t, r, "mug", 10.00)

	items, err := r.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)

	got, err := r.GetProduct(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "mug", got.Name)
	assert.Equal(t, 10.00, got.Price)

	_, err = r.GetProduct(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUsers_CreateGetUpdate(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	user, err := r.CreateUser(ctx, "alice", "$2a$10$fakehash")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.True(t, user.Active)

	got, err := r.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "$2a$10$fakehash", got.PasswordHash)

	byName, err := r.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = r.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	updated, err := r.UpdateUser(ctx, user.ID, "alice2", false)
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	assert.False(t, updated.Active)

	reloaded, err := r.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice2", reloaded.Username)
	assert.False(t, reloaded.Active)

	_, err = r.UpdateUser(ctx, 9999, "ghost", true)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrders_CreateComputesPriceServerSide(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	user, err := r.CreateUser(ctx, "bob", "hash")
	require.NoError(t, err)
	product := seedProduct(t, r, "sticker pack", 10.00)

	order, err := r.CreateOrder(ctx, user.ID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 30.00, order.TotalPrice)
	assert.Equal(t, 3, order.Quantity)
	assert.False(t, order.Canceled)

	got, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.TotalPrice, got.TotalPrice)
}

func TestOrders_CreateUnknownRefs(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	user, err := r.CreateUser(ctx, "carol", "hash")
	require.NoError(t, err)
	product := seedProduct(t, r, "cap", 15.00)

	_, err = r.CreateOrder(ctx, user.ID, 9999, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = r.CreateOrder(ctx, 9999, product.ID, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Failed creates must not leave rows behind.
	var count int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOrders_CancelIsIdempotent(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	user, err := r.CreateUser(ctx, "dave", "hash")
	require.NoError(t, err)
	product := seedProduct(t, r, "shirt", 20.00)

	order, err := r.CreateOrder(ctx, user.ID, product.ID, 1)
	require.NoError(t, err)

	first, err := r.CancelOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, first.Canceled)

	second, err := r.CancelOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, second.Canceled)

	_, err = r.CancelOrder(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPool_NoLeakAfterConcurrentCalls(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	product := seedProduct(t, r, "lanyard", 5.00)

	sqlDB, err := r.DB.DB()
	require.NoError(t, err)
	baseline := sqlDB.Stats().InUse

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = r.GetProduct(ctx, product.ID)
			} else {
				// Half the calls fail with not-found on purpose.
				_, _ = r.GetProduct(ctx, 9999)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, baseline, sqlDB.Stats().InUse)
}

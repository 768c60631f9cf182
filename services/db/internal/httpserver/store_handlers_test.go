package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/merchstore/merch-store/services/db/internal/models"
	"github.com/merchstore/merch-store/services/db/internal/repo"
	"github.com/merchstore/merch-store/services/db/internal/service"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	e := echo.New()
	handler := &StoreHTTP{Svc: &service.StoreService{Repo: &repo.GormRepo{DB: db}}}
	Register(e, &Deps{StoreHandler: handler})

	return &testEnv{T: t, E: e, DB: db}
}

func (env *testEnv) doJSON(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)

	var resp map[string]any
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	}
	return rec, resp
}

func TestUserLifecycleOverHTTP(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec, resp := env.doJSON(http.MethodPost, "/users", map[string]string{
		"username":      "alice",
		"password_hash": "$2a$10$fakehash",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "alice", resp["username"])
	assert.Equal(t, true, resp["active"])
	assert.NotContains(t, resp, "password_hash")
	id := uint(resp["id"].(float64))

	rec, resp = env.doJSON(http.MethodGet, fmt.Sprintf("/users/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", resp["username"])
	assert.NotContains(t, resp, "password_hash")

	// The credential lookup is the one response carrying the hash.
	rec, resp = env.doJSON(http.MethodGet, "/users/by-username/alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "$2a$10$fakehash", resp["password_hash"])

	rec, resp = env.doJSON(http.MethodPut, fmt.Sprintf("/users/%d", id), map[string]any{
		"username": "alice",
		"active":   false,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, resp["active"])

	rec, _ = env.doJSON(http.MethodGet, "/users/9999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = env.doJSON(http.MethodGet, "/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderFlowOverHTTP(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	user := models.User{Username: "bob", PasswordHash: "h", Active: true}
	require.NoError(t, env.DB.Create(&user).Error)
	product := models.Product{Name: "mug", Category: "merch", Price: 10.00, Stock: 10}
	require.NoError(t, env.DB.Create(&product).Error)

	rec, resp := env.doJSON(http.MethodPost, "/orders", map[string]any{
		"user_id":    user.ID,
		"product_id": product.ID,
		"quantity":   3,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 30.00, resp["total_price"])
	orderID := uint(resp["id"].(float64))

	rec, _ = env.doJSON(http.MethodPost, "/orders", map[string]any{
		"user_id":    user.ID,
		"product_id": product.ID,
		"quantity":   4,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp = env.doJSON(http.MethodPost, fmt.Sprintf("/orders/%d/cancel", orderID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["canceled"])

	rec, resp = env.doJSON(http.MethodPost, fmt.Sprintf("/orders/%d/cancel", orderID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["canceled"])

	rec, _ = env.doJSON(http.MethodPost, "/orders/9999/cancel", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductsOverHTTP(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	product := models.Product{Name: "hoodie", Category: "merch", Price: 35.50, Stock: 5}
	require.NoError(t, env.DB.Create(&product).Error)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "hoodie", items[0]["name"])

	rec2, resp := env.doJSON(http.MethodGet, fmt.Sprintf("/products/%d", product.ID), nil)
	require.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, 35.50, resp["price"])

	rec3, _ := env.doJSON(http.MethodGet, "/products/9999", nil)
	assert.Equal(t, http.StatusNotFound, rec3.Code)
}

package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/shopcart/internal/events"
	"github.com/Skotchmaster/shopcart/internal/models"
	"github.com/Skotchmaster/shopcart/internal/repo"
	"github.com/Skotchmaster/shopcart/internal/service"
)

type testEnv struct {
	E       *echo.Echo
	DB      *gorm.DB
	Catalog *CatalogHTTP
}

type envOption func(*Deps)

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repo.Migrate(db))
	r := &repo.GormRepo{DB: db}

	deps := &Deps{
		AuthHandler:    &AuthHTTP{Svc: &service.AuthService{Repo: r, Events: events.Nop{}, Iterations: 1000}},
		CatalogHandler: &CatalogHTTP{Svc: &service.CatalogService{Repo: r}},
		CartHandler:    &CartHTTP{Svc: &service.CartService{Repo: r, Events: events.Nop{}}},
		Ready:          func(ctx context.Context) error { return sqlDB.PingContext(ctx) },
	}
	for _, opt := range opts {
		opt(deps)
	}

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	Register(e, deps)

	return &testEnv{E: e, DB: db, Catalog: deps.CatalogHandler}
}

func withLegacyCatalog() envOption {
	return func(d *Deps) { d.CatalogHandler.LegacyErrors = true }
}

func withReady(err error) envOption {
	return func(d *Deps) { d.Ready = func(context.Context) error { return err } }
}

func (env *testEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)

	var resp map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	}
	return rec, resp
}

func (env *testEnv) seedProduct(t *testing.T, name string, price float64) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: price, Image: name + ".jpg", Brand: "Acme", Category: "home"}
	require.NoError(t, env.DB.Create(&p).Error)
	return p
}

// breakStore drops the tables so every query fails.
func (env *testEnv) breakStore(t *testing.T) {
	t.Helper()
	require.NoError(t, env.DB.Migrator().DropTable(&models.CartItem{}, &models.Product{}, &models.User{}))
}

var errStoreDown = errors.New("store down")

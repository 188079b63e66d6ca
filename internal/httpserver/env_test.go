package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/bistro/internal/models"
	"github.com/Skotchmaster/bistro/internal/repo"
	"github.com/Skotchmaster/bistro/internal/service"
	auth "github.com/Skotchmaster/bistro/pkg/middleware/auth"
	"github.com/Skotchmaster/bistro/pkg/tokens"
)

var testSecret = []byte("test-jwt-secret")

type fakeGateway struct {
	mu    sync.Mutex
	units []int64
	err   error
}

func (g *fakeGateway) CreateIntent(_ context.Context, minorUnits int64, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.units = append(g.units, minorUnits)
	if g.err != nil {
		return "", g.err
	}
	return fmt.Sprintf("pi_%d_secret", minorUnits), nil
}

type testEnv struct {
	T       *testing.T
	E       *echo.Echo
	Repo    *repo.GormRepo
	Gateway *fakeGateway
}

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func newTestEnv(t *testing.T, opts ...func(*Deps)) *testEnv {
	t.Helper()

	r := &repo.GormRepo{DB: initTestDB(t)}
	require.NoError(t, r.Migrate(context.Background()))

	users := &service.UserService{Repo: r}
	access := auth.NewAccessControl(testSecret, users)
	gw := &fakeGateway{}

	deps := &Deps{
		TokenHandler: &TokenHTTP{JWTSecret: testSecret, TTL: time.Hour},
		UserHandler:  &UserHTTP{Svc: users, Access: access},
		MenuHandler:  &MenuHTTP{Svc: &service.MenuService{Repo: r}},
		CartHandler: &CartHTTP{
			Svc:    &service.CartService{Repo: r, Menu: r},
			Access: access,
		},
		PaymentHandler: &PaymentHTTP{
			Settlement: &service.SettlementService{Payments: r, Cart: r},
			Intents:    &service.PaymentIntentService{Gateway: gw},
			Access:     access,
		},
		StatsHandler: &StatsHTTP{Svc: &service.ReportingService{Repo: r}},
		Access:       access,
	}
	for _, opt := range opts {
		opt(deps)
	}

	e := echo.New()
	Register(e, deps)

	return &testEnv{T: t, E: e, Repo: r, Gateway: gw}
}

// user creates a user with the given role and returns a bearer token for it.
func (env *testEnv) user(email, role string) string {
	env.T.Helper()

	u := &models.User{Name: email, Email: email, Role: role}
	_, err := env.Repo.CreateUserIfNotExists(context.Background(), u)
	require.NoError(env.T, err)

	token, _, err := tokens.Issue(email, testSecret, time.Hour)
	require.NoError(env.T, err)
	return token
}

func (env *testEnv) menuItem(name, category, price string) *models.MenuItem {
	env.T.Helper()

	item := &models.MenuItem{Name: name, Category: category, Price: decimal.RequireFromString(price)}
	require.NoError(env.T, env.Repo.CreateMenuItem(context.Background(), item))
	return item
}

func (env *testEnv) cartEntry(email string, item *models.MenuItem) *models.CartEntry {
	env.T.Helper()

	entry := &models.CartEntry{Email: email, MenuItemID: item.ID, Name: item.Name, Price: item.Price}
	require.NoError(env.T, env.Repo.AddCartEntry(context.Background(), entry))
	return entry
}

func (env *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

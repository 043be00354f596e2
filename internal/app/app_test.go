package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learning_center_backend/internal/config"
	"learning_center_backend/internal/model"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.JWT.Secret = "app-test-jwt"
	cfg.JWT.ExpireTime = time.Hour
	cfg.HashID.Secret = "app-test-hash"
	cfg.Storage.LocalPath = t.TempDir()
	cfg.RateLimit = config.RateLimitConfig{MaxRequests: 1000, WindowMinutes: 15, APIMaxRequests: 1000, APIWindowMinutes: 15}
	cfg.Stats.RetentionDays = 30
	return cfg
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	a, err := Build(testConfig(t), db, nil)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func (a *App) session(t *testing.T, id uint, role model.UserRole) *http.Cookie {
	t.Helper()
	user := &model.User{Login: "router-test", Role: role}
	user.ID = id
	token, err := util.GenerateJWT(util.NewClaims(user, a.Codec), a.Config.JWT.Secret, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: util.TokenCookie, Value: token}
}

func serve(a *App, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func TestHealthAndPublicContent(t *testing.T) {
	a := newTestApp(t)

	w := serve(a, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"up"`)

	w = serve(a, httptest.NewRequest(http.MethodGet, "/api/faq", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestProtectedRoutes(t *testing.T) {
	a := newTestApp(t)

	w := serve(a, httptest.NewRequest(http.MethodGet, "/api/user", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/user/"+a.Codec.EncodeUint(1), nil)
	req.AddCookie(a.session(t, 2, model.RoleClient))
	assert.Equal(t, http.StatusForbidden, serve(a, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/user/not-a-token", nil)
	req.AddCookie(a.session(t, 1, model.RoleAdmin))
	assert.Equal(t, http.StatusBadRequest, serve(a, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.AddCookie(a.session(t, 1, model.RoleAdmin))
	assert.Equal(t, http.StatusOK, serve(a, req).Code)
}

func TestTrackedRoutesWriteStats(t *testing.T) {
	a := newTestApp(t)

	serve(a, httptest.NewRequest(http.MethodGet, "/api/blog", nil))
	serve(a, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	var rows []model.StatsLog
	require.NoError(t, a.DB.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "/api/blog", rows[0].URL)
}

func TestCloseEndsAppContext(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.ctx.Err())

	a.Close()
	assert.ErrorIs(t, a.ctx.Err(), context.Canceled)
}

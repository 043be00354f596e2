package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"learning_center_backend/internal/model"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

var codec = hashid.MustNew("middleware-test-hash")

func sessionToken(t *testing.T, id uint, role model.UserRole) string {
	t.Helper()
	user := &model.User{Login: "tester", Role: role}
	user.ID = id
	token, err := util.GenerateJWT(util.NewClaims(user, codec), testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authn := Auth(testSecret, codec)
	r.GET("/admin/:hashId", authn, AdminOnly(), DecodeHashID(codec), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": util.ParamID(c), "user": util.GetUserID(c)})
	})
	r.GET("/me", authn, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": util.GetUserID(c)})
	})
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthWithoutSessionIs401(t *testing.T) {
	w := do(newRouter(), httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication invalid")
}

func TestAuthRejectsForeignToken(t *testing.T) {
	user := &model.User{Login: "x", Role: model.RoleAdmin}
	user.ID = 1
	forged, err := util.GenerateJWT(util.NewClaims(user, codec), "some-other-secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: util.TokenCookie, Value: forged})
	assert.Equal(t, http.StatusUnauthorized, do(newRouter(), req).Code)
}

func TestAuthAcceptsCookieAndBearer(t *testing.T) {
	token := sessionToken(t, 7, model.RoleClient)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: util.TokenCookie, Value: token})
	w := do(newRouter(), req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":7}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, do(newRouter(), req).Code)
}

func TestClientOnAdminRouteIs403(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/"+codec.EncodeUint(3), nil)
	req.AddCookie(&http.Cookie{Name: util.TokenCookie, Value: sessionToken(t, 7, model.RoleClient)})

	w := do(newRouter(), req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Not authorized to access this route")
}

func TestDecodeHashID(t *testing.T) {
	admin := sessionToken(t, 1, model.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin/"+codec.EncodeUint(42), nil)
	req.AddCookie(&http.Cookie{Name: util.TokenCookie, Value: admin})
	w := do(newRouter(), req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42,"user":1}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/admin/garbage", nil)
	req.AddCookie(&http.Cookie{Name: util.TokenCookie, Value: admin})
	w = do(newRouter(), req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid id provided", resp.Message)
}

func TestSanitizeBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SanitizeBody())
	r.POST("/echo", func(c *gin.Context) {
		raw, _ := io.ReadAll(c.Request.Body)
		c.Data(http.StatusOK, gin.MIMEJSON, raw)
	})

	body := `{"title":{"ro":"<b>Salut</b><script>alert(1)</script>"},"password":"<p>&x","count":3,"tags":["<img src=x onerror=alert(1)>ok"]}`
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	w := do(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Title    map[string]string `json:"title"`
		Password string            `json:"password"`
		Count    int               `json:"count"`
		Tags     []string          `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "<b>Salut</b>", out.Title["ro"])
	assert.Equal(t, "<p>&x", out.Password)
	assert.Equal(t, 3, out.Count)
	assert.NotContains(t, out.Tags[0], "onerror")
	assert.Contains(t, out.Tags[0], "ok")
}

func TestSanitizeKeepsPlainText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SanitizeBody())
	r.POST("/echo", func(c *gin.Context) {
		raw, _ := io.ReadAll(c.Request.Body)
		c.Data(http.StatusOK, gin.MIMEJSON, raw)
	})

	in := map[string]string{
		"title":   `Tom's "Intro" Course`,
		"name":    "Q&A > notes",
		"message": "&lt;script&gt; stays text",
	}
	body, err := json.Marshal(in)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", gin.MIMEJSON)
	w := do(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, in, out)
}

func TestSanitizeLeavesOtherContentTypesAlone(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SanitizeBody())
	r.POST("/echo", func(c *gin.Context) {
		raw, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(raw))
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("<script>x</script>"))
	req.Header.Set("Content-Type", "text/plain")
	assert.Equal(t, "<script>x</script>", do(r, req).Body.String())
}

type recorder struct {
	rows []*model.StatsLog
}

func (r *recorder) Create(entry *model.StatsLog) error {
	r.rows = append(r.rows, entry)
	return nil
}

func TestStatsLoggerRecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := &recorder{}
	r := gin.New()
	r.Use(RequestID(), StatsLogger(rec))
	r.GET("/api/lesson", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/api/lesson?page=2", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	w := do(r, req)

	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	require.Len(t, rec.rows, 1)
	assert.Equal(t, "GET", rec.rows[0].Method)
	assert.Equal(t, "/api/lesson?page=2", rec.rows[0].URL)
	assert.Equal(t, model.StatsSuccess, rec.rows[0].Status)
	assert.Equal(t, "Chrome", rec.rows[0].Browser)
}

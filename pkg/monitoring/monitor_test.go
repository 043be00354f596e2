package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsUseRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/api/lesson/:slug", func(c *gin.Context) { c.Status(http.StatusOK) })

	counter := RequestCounter.WithLabelValues(http.MethodGet, "/api/lesson/:slug", "200")
	before := testutil.ToFloat64(counter)

	for _, slug := range []string{"intro", "week-2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/lesson/"+slug, nil))
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
	assert.Equal(t, 0.0, testutil.ToFloat64(InFlight))
}

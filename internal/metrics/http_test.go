package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newMetricsRouter(t *testing.T) (*Provider, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider, _ := newTestBusinessMetrics(t, "configd")

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "configd"))
	router.GET("/api/v1/services/:name/config", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": c.Param("name")})
	})
	router.POST("/api/v1/secrets/:service/:key", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	router.GET("/api/v1/secrets/:service/:key/value", func(c *gin.Context) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	})
	return provider, router
}

func serve(router http.Handler, method, target string) int {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w.Code
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	t.Run("labels use route patterns", func(t *testing.T) {
		provider, router := newMetricsRouter(t)

		for _, name := range []string{"fks_ai", "fks_api", "fks_web"} {
			assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/services/"+name+"/config"))
		}
		assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/api/v1/secrets/fks_ai/OPENAI_API_KEY"))

		output := scrape(t, provider)
		assertBizMetricLine(t, output, `configd_http_requests_total`,
			`method="GET".*path="/api/v1/services/:name/config".*status_code="200"`, `3`)
		assertBizMetricLine(t, output, `configd_http_requests_total`,
			`method="POST".*path="/api/v1/secrets/:service/:key".*status_code="200"`, `1`)
		assertBizMetricLine(t, output, `configd_http_request_duration_seconds_count`,
			`path="/api/v1/services/:name/config"`, `3`)
		assert.NotContains(t, output, "fks_ai")
		assert.NotContains(t, output, "OPENAI_API_KEY")
	})

	t.Run("status codes are recorded", func(t *testing.T) {
		provider, router := newMetricsRouter(t)

		assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/api/v1/secrets/fks_ai/API_KEY/value"))

		assertBizMetricLine(t, scrape(t, provider), `configd_http_requests_total`,
			`path="/api/v1/secrets/:service/:key/value".*status_code="401"`, `1`)
	})

	t.Run("unmatched routes collapse to unknown", func(t *testing.T) {
		provider, router := newMetricsRouter(t)

		assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/nope/one"))
		assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/nope/two"))

		output := scrape(t, provider)
		assertBizMetricLine(t, output, `configd_http_requests_total`,
			`path="unknown".*status_code="404"`, `2`)
		assert.NotContains(t, output, "/nope/")
	})
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "/api/v1/services/:name/config/:path", expected: "/api/v1/services/:name/config/:path"},
		{input: "/", expected: "/"},
		{input: "", expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizePath(tt.input))
		})
	}
}

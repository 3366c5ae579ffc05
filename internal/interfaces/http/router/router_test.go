package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("/orders")
	group.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "orders")
	})

	r.Register(group)
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/orders", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "orders", w.Body.String())
}

func TestDomainGroupMethods(t *testing.T) {
	tests := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/api/v1/test/items", http.StatusOK},
		{"POST", "/api/v1/test/items", http.StatusCreated},
		{"PUT", "/api/v1/test/items/123", http.StatusOK},
		{"PATCH", "/api/v1/test/items/123", http.StatusOK},
		{"DELETE", "/api/v1/test/items/123", http.StatusNoContent},
	}

	engine := gin.New()
	g := NewDomainGroup("/test")
	g.GET("/items", func(c *gin.Context) { c.Status(http.StatusOK) }).
		POST("/items", func(c *gin.Context) { c.Status(http.StatusCreated) }).
		PUT("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) }).
		PATCH("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) }).
		DELETE("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	api := engine.Group("/api/v1")
	g.RegisterRoutes(api)

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, tt.status, w.Code, "%s %s", tt.method, tt.path)
	}
}

func TestDomainGroupMiddleware(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("/test")

	g.Use(func(c *gin.Context) {
		c.Header("X-Test-Middleware", "applied")
		c.Next()
	})
	g.GET("/items", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := engine.Group("/api/v1")
	g.RegisterRoutes(api)

	req := httptest.NewRequest("GET", "/api/v1/test/items", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
}

func TestMultipleDomainGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	orders := NewDomainGroup("/orders")
	orders.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "orders")
	})

	products := NewDomainGroup("/products")
	products.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "products")
	})

	r.Register(orders).Register(products)
	r.Setup()

	req1 := httptest.NewRequest("GET", "/api/v1/orders", nil)
	w1 := httptest.NewRecorder()
	engine.ServeHTTP(w1, req1)
	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, "orders", w1.Body.String())

	req2 := httptest.NewRequest("GET", "/api/v1/products", nil)
	w2 := httptest.NewRecorder()
	engine.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, "products", w2.Body.String())
}

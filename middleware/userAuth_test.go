package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gymslot/utils"

	"github.com/gin-gonic/gin"
)

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthUserMiddleware())
	r.GET("/whoami", func(c *gin.Context) {
		id, _ := c.Get("userID")
		c.String(http.StatusOK, id.(string))
	})
	return r
}

func TestJWTAuthUserMiddlewareAccepts(t *testing.T) {
	token, err := utils.GenerateToken("user-1", "user-1@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	authTestRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "user-1" {
		t.Fatalf("user id = %q, want user-1", w.Body.String())
	}
}

func TestJWTAuthUserMiddlewareRejects(t *testing.T) {
	expired, err := utils.GenerateToken("user-1", "user-1@example.com", -time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer scheme", "Basic abc123"},
		{"empty bearer token", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			authTestRouter().ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
		})
	}
}

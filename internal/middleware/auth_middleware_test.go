package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Ayomidekayo/OgwInventorybackend/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(roles ...string) *gin.Engine {
	engine := gin.New()
	group := engine.Group("/secure")
	group.Use(AuthMiddleware())
	if len(roles) > 0 {
		group.Use(RoleAuthMiddleware(roles...))
	}
	group.GET("", func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return engine
}

func request(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	if rec := request(protectedRouter(), ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	if rec := request(protectedRouter(), "Token abc"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	if rec := request(protectedRouter(), "Bearer not.a.token"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	token, err := utils.GenerateAccessToken(9, "tester", "staff")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if rec := request(protectedRouter(), "Bearer "+token); rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
}

func TestRoleAuthMiddleware(t *testing.T) {
	staffToken, _ := utils.GenerateAccessToken(9, "tester", "staff")
	superToken, _ := utils.GenerateAccessToken(1, "root", "superadmin")

	engine := protectedRouter("superadmin")
	if rec := request(engine, "Bearer "+staffToken); rec.Code != http.StatusForbidden {
		t.Errorf("staff against superadmin route: status = %d, want 403", rec.Code)
	}
	if rec := request(engine, "Bearer "+superToken); rec.Code != http.StatusOK {
		t.Errorf("superadmin against superadmin route: status = %d, want 200", rec.Code)
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	engine := gin.New()
	engine.GET("/open", OptionalAuthMiddleware(), func(c *gin.Context) {
		if _, exists := c.Get("userID"); exists {
			c.JSON(http.StatusOK, gin.H{"authenticated": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous request: status = %d, want 200", rec.Code)
	}

	token, _ := utils.GenerateAccessToken(9, "tester", "staff")
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated request: status = %d, want 200", rec.Code)
	}
}

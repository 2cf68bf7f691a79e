package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hoshop/backend/internal/domain/shared"
	"github.com/hoshop/backend/internal/infrastructure/auth"
	"github.com/hoshop/backend/internal/infrastructure/config"
	"github.com/hoshop/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-at-least-32-chars",
		Issuer:     "test-issuer",
		Expiration: expiration,
	})
}

func tokenFor(t *testing.T, svc *auth.JWTService, role shared.Role) (string, string) {
	t.Helper()
	userID := uuid.NewString()
	token, err := svc.GenerateToken(userID, role)
	require.NoError(t, err)
	return token.AccessToken, userID
}

func actorRouter(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.Use(mw...)
	router.GET("/test", func(c *gin.Context) {
		actor := GetActor(c)
		c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID, "role": actor.Role})
	})
	return router
}

func doGet(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if token != "" {
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	router := actorRouter(JWTAuth(svc, nil))

	t.Run("valid token", func(t *testing.T) {
		token, userID := tokenFor(t, svc, shared.RoleCustomer)
		w := doGet(router, token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID)
		assert.Contains(t, w.Body.String(), `"role":"customer"`)
	})

	t.Run("missing header", func(t *testing.T) {
		w := doGet(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeUnauthorized, decodeEnvelope(t, w).Error.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(AuthHeaderKey, "Basic abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doGet(router, "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeTokenInvalid, decodeEnvelope(t, w).Error.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := newTestJWTService(-time.Minute)
		token, _ := tokenFor(t, expired, shared.RoleCustomer)
		w := doGet(router, token)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeTokenExpired, decodeEnvelope(t, w).Error.Code)
	})
}

func TestOptionalJWTAuth(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	router := actorRouter(OptionalJWTAuth(svc))

	t.Run("anonymous", func(t *testing.T) {
		w := doGet(router, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":""`)
	})

	t.Run("invalid token is ignored", func(t *testing.T) {
		w := doGet(router, "garbage")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":""`)
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		token, userID := tokenFor(t, svc, shared.RoleStaff)
		w := doGet(router, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID)
	})
}

func TestRequireRoles(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	tests := []struct {
		name   string
		role   shared.Role
		status int
	}{
		{"owner allowed", shared.RoleOwner, http.StatusOK},
		{"admin allowed", shared.RoleAdmin, http.StatusOK},
		{"staff allowed", shared.RoleStaff, http.StatusOK},
		{"customer forbidden", shared.RoleCustomer, http.StatusForbidden},
	}
	router := actorRouter(JWTAuth(svc, nil), RequireStaff())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, _ := tokenFor(t, svc, tt.role)
			assert.Equal(t, tt.status, doGet(router, token).Code)
		})
	}

	t.Run("anonymous under optional auth", func(t *testing.T) {
		router := actorRouter(OptionalJWTAuth(svc), RequireRoles(shared.RoleOwner))
		w := doGet(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("narrower role list", func(t *testing.T) {
		router := actorRouter(JWTAuth(svc, nil), RequireRoles(shared.RoleOwner, shared.RoleAdmin))
		token, _ := tokenFor(t, svc, shared.RoleStaff)
		w := doGet(router, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, dto.ErrCodeForbidden, decodeEnvelope(t, w).Error.Code)
	})
}

package stubserver

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/tutorlink-admin-core/internal/models"
	appErrors "github.com/noah-isme/tutorlink-admin-core/pkg/errors"
	"github.com/noah-isme/tutorlink-admin-core/pkg/response"
)

// TokenManager issues and validates the HS256 bearer tokens the stub backend
// hands out on login.
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

// NewTokenManager builds a manager around a shared secret.
func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), expiry: expiry}
}

// Issue signs a token for an authenticated operator.
func (m *TokenManager) Issue(userID, email string, role models.UserRole) (string, error) {
	now := time.Now()
	claims := models.JWTClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Validate parses and verifies a raw token.
func (m *TokenManager) Validate(raw string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.Clone(appErrors.ErrAuthRequired, "unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrAuthRequired, "token expired or invalid")
	}
	return claims, nil
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, appErrors.Clone(appErrors.ErrAuthRequired, "missing bearer token"))
			c.Abort()
			return
		}
		claims, err := tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("user_role", string(claims.Role))
		c.Next()
	}
}

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wholesale/logger"
	"wholesale/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const principalKey = "principal"

type TokenBlacklist interface {
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

// Claims carried by tokens issued at login.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func AuthMiddleware(secret []byte, blacklist TokenBlacklist, log *logger.Logger) gin.HandlerFunc {
	log = log.With("middleware", "AuthMiddleware")
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
			return
		}

		principal, err := parsePrincipal(tokenString, secret)
		if err != nil {
			log.Debug("Rejected token", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		listed, err := blacklist.IsBlacklisted(ctx, tokenString)
		if err != nil {
			log.Error("Blacklist lookup failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		if listed {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been blacklisted"})
			return
		}

		SetPrincipal(c, principal)
		c.Next()
	}
}

// Authorize admits the request only when the authenticated principal holds
// one of roles.
func Authorize(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	}
}

func SetPrincipal(c *gin.Context, p models.Principal) {
	c.Set(principalKey, p)
}

func PrincipalFrom(c *gin.Context) (models.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return models.Principal{}, false
	}
	principal, ok := v.(models.Principal)
	return principal, ok
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func parsePrincipal(tokenString string, secret []byte) (models.Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return models.Principal{}, err
	}
	if !token.Valid {
		return models.Principal{}, fmt.Errorf("invalid token")
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return models.Principal{}, fmt.Errorf("userId claim: %w", err)
	}
	if id.IsZero() {
		return models.Principal{}, fmt.Errorf("userId claim is the zero id")
	}
	if claims.Role == "" {
		return models.Principal{}, fmt.Errorf("missing role claim")
	}
	return models.Principal{ID: id, Role: models.Role(claims.Role)}, nil
}

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"forgefit_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

const tokenMaxAge = 24 * time.Hour

type APIAuth struct {
	secret    []byte
	debugMode bool
}

func NewAPIAuth(secret string, debugMode bool) *APIAuth {
	return &APIAuth{
		secret:    []byte(secret),
		debugMode: debugMode,
	}
}

// TokenPayload is the signed part of a bearer token issued to API clients.
type TokenPayload struct {
	ClientID string `json:"client_id"`
	IssuedAt int64  `json:"issued_at"`
}

// AuthMiddleware validates "Authorization: Bearer <payload>.<signature>"
// headers, where payload is base64-encoded JSON and signature is the hex
// HMAC-SHA256 of the encoded payload.
func (a *APIAuth) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Info("missing authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Info("invalid authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		payload, err := a.ValidateToken(token)
		if err != nil {
			if !a.debugMode {
				log.Info("invalid api token", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api token"})
				return
			}
			payload = &TokenPayload{ClientID: "debug"}
		}

		c.Set("api_client", payload)
		c.Next()
	}
}

func (a *APIAuth) ValidateToken(token string) (*TokenPayload, error) {
	encoded, signature, found := strings.Cut(token, ".")
	if !found {
		return nil, ErrMalformedToken
	}

	mac := hmac.New(sha256.New, a.secret)
	mac.Write([]byte(encoded))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, ErrBadSignature
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrMalformedToken
	}

	var payload TokenPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, ErrMalformedToken
	}

	issued := time.Unix(payload.IssuedAt, 0)
	if time.Since(issued) > tokenMaxAge {
		return nil, ErrTokenExpired
	}

	return &payload, nil
}

// IssueToken signs a token for the given client. Used by operator tooling
// and tests; the server itself only validates.
func (a *APIAuth) IssueToken(clientID string, issuedAt time.Time) (string, error) {
	raw, err := json.Marshal(TokenPayload{
		ClientID: clientID,
		IssuedAt: issuedAt.Unix(),
	})
	if err != nil {
		return "", err
	}

	encoded := base64.RawURLEncoding.EncodeToString(raw)
	mac := hmac.New(sha256.New, a.secret)
	mac.Write([]byte(encoded))

	return encoded + "." + hex.EncodeToString(mac.Sum(nil)), nil
}

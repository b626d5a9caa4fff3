package middleware

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/subtle"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/remixrite/remix-ledger/internal/api/shared/errors"
	"github.com/remixrite/remix-ledger/internal/logger"
)

const (
	AUTH_TYPE_KEY    = "auth_type"
	AUTH_SUBJECT_KEY = "auth_subject"
	AUTH_CALLER_KEY  = "auth_caller"
	JWT_CLAIMS_KEY   = "jwt_claims"

	AUTH_TYPE_JWT    = "jwt"
	AUTH_TYPE_APIKEY = "apikey"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string // RSA public key in PEM format
	APIKeys      []string
}

// AuthResult holds the result of authentication
type AuthResult struct {
	Success     bool
	AuthType    string
	Claims      *jwt.RegisteredClaims
	AuthSubject string

	// Caller identifies who authenticated without exposing the credential
	Caller string
	Error  error
}

type apiKey struct {
	secret []byte
	id     string
}

// authenticator verifies credentials against a parsed AuthConfig
type authenticator struct {
	publicKey    *rsa.PublicKey
	publicKeyErr error
	apiKeys      []apiKey
}

// apiKeyID is a short stable identifier of a key, safe to log
func apiKeyID(key string) string {
	sum := sha256.Sum256([]byte(key))
	return "apikey:" + hex.EncodeToString(sum[:6])
}

func newAuthenticator(cfg AuthConfig) *authenticator {
	a := &authenticator{}
	for _, key := range cfg.APIKeys {
		if key != "" {
			a.apiKeys = append(a.apiKeys, apiKey{secret: []byte(key), id: apiKeyID(key)})
		}
	}

	if cfg.JWTPublicKey == "" {
		a.publicKeyErr = errors.New("JWT public key not configured")
	} else {
		a.publicKey, a.publicKeyErr = parseRSAPublicKey(cfg.JWTPublicKey)
		if a.publicKeyErr != nil {
			logger.Warn("Invalid JWT public key, bearer authentication disabled", zap.Error(a.publicKeyErr))
		}
	}
	return a
}

// Authenticate validates the Authorization header and returns the authentication result
func Authenticate(authHeader string, cfg AuthConfig) AuthResult {
	return newAuthenticator(cfg).authenticate(authHeader)
}

func (a *authenticator) authenticate(authHeader string) AuthResult {
	result := AuthResult{Success: false}

	if authHeader == "" {
		result.Error = errors.New("missing Authorization header")
		return result
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		result.Error = errors.New("invalid Authorization header format")
		return result
	}

	authType := strings.ToLower(parts[0])
	credentials := strings.TrimSpace(parts[1])

	switch authType {
	case "bearer":
		claims, err := a.validateJWT(credentials)
		if err != nil {
			result.Error = err
			return result
		}
		result.Success = true
		result.AuthType = AUTH_TYPE_JWT
		result.Claims = claims
		result.AuthSubject = claims.Subject
		result.Caller = "jwt:" + claims.Subject

	case "apikey":
		id, err := a.validateAPIKey(credentials)
		if err != nil {
			result.Error = err
			return result
		}
		result.Success = true
		result.AuthType = AUTH_TYPE_APIKEY
		result.Caller = id

	default:
		result.Error = fmt.Errorf("unsupported authorization type: %s", authType)
	}

	return result
}

// Auth returns a gin middleware for authentication
// It supports both JWT (Bearer token) and API Key authentication
func Auth(cfg AuthConfig) gin.HandlerFunc {
	a := newAuthenticator(cfg)

	return func(c *gin.Context) {
		result := a.authenticate(c.GetHeader("Authorization"))

		if !result.Success {
			logger.WarnCtx(c.Request.Context(), "Authentication failed",
				zap.Error(result.Error),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierrors.ErrorResponse{
				Error: apierrors.NewUnauthorizedError("Authentication failed", result.Error.Error()),
			})
			return
		}

		c.Set(AUTH_TYPE_KEY, result.AuthType)
		if result.Claims != nil {
			c.Set(JWT_CLAIMS_KEY, result.Claims)
		}
		if result.AuthSubject != "" {
			c.Set(AUTH_SUBJECT_KEY, result.AuthSubject)
		}
		c.Set(AUTH_CALLER_KEY, result.Caller)

		logger.DebugCtx(c.Request.Context(), "Authentication successful",
			zap.String("auth_type", result.AuthType),
			zap.String("caller", result.Caller),
			zap.String("path", c.Request.URL.Path),
		)

		c.Next()
	}
}

// AuthSubject returns the JWT subject of an authenticated request, if any
func AuthSubject(c *gin.Context) string {
	return c.GetString(AUTH_SUBJECT_KEY)
}

// AuthCaller returns the caller identity set by Auth, empty for anonymous requests
func AuthCaller(c *gin.Context) string {
	return c.GetString(AUTH_CALLER_KEY)
}

// validateJWT validates a JWT token with RSA signature and returns claims.
// Expiry and not-before are enforced by the parser.
func (a *authenticator) validateJWT(tokenString string) (*jwt.RegisteredClaims, error) {
	if a.publicKeyErr != nil {
		return nil, a.publicKeyErr
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// parseRSAPublicKey parses an RSA public key from PEM format
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return rsaKey, nil
}

// validateAPIKey compares against every configured key in constant time and returns the key's id
func (a *authenticator) validateAPIKey(candidate string) (string, error) {
	if len(a.apiKeys) == 0 {
		return "", errors.New("no API keys configured")
	}

	id := ""
	for _, key := range a.apiKeys {
		if subtle.ConstantTimeCompare(key.secret, []byte(candidate)) == 1 {
			id = key.id
		}
	}
	if id == "" {
		return "", errors.New("invalid API key")
	}
	return id, nil
}

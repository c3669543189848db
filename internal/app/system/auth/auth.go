// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/slopepool/slopepool/internal/app/system/respond"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// ErrInvalidToken covers every token verification failure: bad
// signature, wrong algorithm, expired, or malformed claims.
var ErrInvalidToken = errors.New("invalid or expired token")

// Manager issues and verifies the bearer tokens that authenticate API
// callers. Tokens are HMAC-signed JWTs carrying the user id.
type Manager struct {
	secret []byte
	expiry time.Duration
	log    *zap.Logger
}

// NewManager constructs a Manager. The secret must be non-empty and the
// expiry positive.
func NewManager(secret string, expiry time.Duration, logger *zap.Logger) (*Manager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("auth: jwt secret must not be empty")
	}
	if expiry <= 0 {
		return nil, errors.New("auth: token expiry must be positive")
	}
	return &Manager{secret: []byte(secret), expiry: expiry, log: logger}, nil
}

// IssueToken returns a signed token identifying userID.
func (m *Manager) IssueToken(userID primitive.ObjectID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.Hex(),
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(m.expiry).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseToken verifies a token string and returns the user id it carries.
func (m *Manager) ParseToken(tokenStr string) (primitive.ObjectID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, ErrInvalidToken
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return primitive.NilObjectID, ErrInvalidToken
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}
	return id, nil
}

// CurrentUser returns the authenticated caller's user id from the
// request context (set by RequireSignedIn).
func CurrentUser(r *http.Request) (primitive.ObjectID, bool) {
	id, ok := r.Context().Value(currentUserKey).(primitive.ObjectID)
	return id, ok
}

// RequireSignedIn resolves the Authorization bearer token and injects
// the caller's user id into the request context. Requests without a
// valid token get a 401 with a {msg} body.
func (m *Manager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A user already in context (test hook) short-circuits verification.
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		id, err := m.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			m.log.Debug("rejected bearer token", zap.Error(err))
			respond.Msg(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), currentUserKey, id)))
	})
}

// WithTestUser injects a user id into the request context, bypassing
// token verification. For handler tests only.
func WithTestUser(r *http.Request, userID primitive.ObjectID) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, userID))
}

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"friender/pkg/helper"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// GenerateToken signs an HS256 token whose subject is the user id.
// ttl <= 0 issues a token without expiry.
func GenerateToken(secret string, userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:  strconv.FormatUint(uint64(userID), 10),
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates the token and returns the user id it was issued for.
func ParseToken(secret, tokenStr string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	id, err := helper.ParseID(claims.Subject)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// bearerToken reads "Authorization: Bearer <t>", falling back to ?token=
// for websocket upgrades where browsers cannot set headers.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return r.URL.Query().Get("token")
}

func authenticate(secret string, r *http.Request) (uint, error) {
	tokenStr := bearerToken(r)
	if tokenStr == "" {
		return 0, ErrInvalidToken
	}
	userID, err := ParseToken(secret, tokenStr)
	if err != nil {
		return 0, err
	}
	// 클라이언트가 보낸 X-User-ID는 신뢰하지 않는다
	r.Header.Set(helper.HeaderUserID, strconv.FormatUint(uint64(userID), 10))
	return userID, nil
}

// JWTAuth is the net/http flavour used by the chi router.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := authenticate(secret, r); err != nil {
				helper.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

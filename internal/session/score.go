package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// scoreClaims wraps the single integer the score ledger protects.
type scoreClaims struct {
	Score int `json:"score"`
	jwt.RegisteredClaims
}

// IssueScoreToken signs the cumulative score into a fresh HS256 token. The
// token is reissued on every submission.
func IssueScoreToken(score int, secret string, ttl time.Duration) (string, error) {
	claims := &scoreClaims{
		Score: score,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ReadScoreToken verifies the token and returns the score it carries. A
// missing, expired or tampered token reads as zero: the attempt continues
// with an empty ledger rather than failing the request.
func ReadScoreToken(value, secret string) int {
	if value == "" {
		return 0
	}
	token, err := jwt.ParseWithClaims(value, &scoreClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0
	}
	claims, ok := token.Claims.(*scoreClaims)
	if !ok || claims.Score < 0 {
		return 0
	}
	return claims.Score
}

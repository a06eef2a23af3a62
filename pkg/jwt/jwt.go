package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const TokenAccess = "access"

// 一次性操作令牌的 operation
const (
	OperationConfirm       = "confirm"
	OperationResetPassword = "reset-password"
	OperationChangeEmail   = "change-email"
)

var ErrTokenType = errors.New("invalid token type")

type Claims struct {
	UserID uint64 `json:"user_id"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

// OperationClaims 邮件链接中携带的一次性令牌
type OperationClaims struct {
	UserID    uint64 `json:"id"`
	Operation string `json:"operation"`
	NewEmail  string `json:"new_email,omitempty"`
	jwt.RegisteredClaims
}

func GenerateToken(secret []byte, userID uint64, tokenType string, expire time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ParseToken(secret []byte, expectedType string, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, keyFunc(secret))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Type != expectedType {
		return nil, ErrTokenType
	}
	return claims, nil
}

func GenerateOperationToken(secret []byte, userID uint64, operation, newEmail string, expire time.Duration) (string, error) {
	claims := OperationClaims{
		UserID:    userID,
		Operation: operation,
		NewEmail:  newEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseOperationToken 校验签名, 有效期, operation 以及令牌归属用户.
// userID 为 0 时不校验归属, 由调用方根据返回的 claims 自行查找用户.
func ParseOperationToken(secret []byte, userID uint64, operation, tokenStr string) (*OperationClaims, bool) {
	claims := &OperationClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, keyFunc(secret))
	if err != nil || !token.Valid {
		return nil, false
	}
	if claims.Operation != operation {
		return nil, false
	}
	if userID != 0 && claims.UserID != userID {
		return nil, false
	}
	if operation == OperationChangeEmail && claims.NewEmail == "" {
		return nil, false
	}
	return claims, true
}

func keyFunc(secret []byte) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	}
}

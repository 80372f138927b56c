package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// secretKey 存储用于签发和校验JWT的HMAC密钥。
var secretKey []byte

// expiry 是签发令牌的有效期。
var expiry = 24 * time.Hour

// ErrInvalidToken 表示令牌无法通过校验（签名错误、过期或格式不合法）。
var ErrInvalidToken = errors.New("无效的令牌")

// Claims 定义了登录令牌中携带的用户信息。
// sub 字段沿用JWT标准，存放用户ID。
type Claims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Configure 设置签名密钥和有效期。
// secret为空时会生成一个密码学安全的随机密钥，服务器重启后已签发的令牌将全部失效。
func Configure(secret string, expiryHours int) {
	if secret != "" {
		secretKey = []byte(secret)
	} else {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic("无法生成安全的密钥: " + err.Error())
		}
		secretKey = key
		fmt.Println("JWT密钥未配置，已生成随机密钥。")
	}
	if expiryHours > 0 {
		expiry = time.Duration(expiryHours) * time.Hour
	}
}

// GenerateToken 为指定用户签发一个HS256令牌。
func GenerateToken(userID, email, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:    email,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secretKey)
}

// ParseToken 校验令牌并返回其中的用户信息。
// 显式限定HS256，拒绝算法替换攻击。
func ParseToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

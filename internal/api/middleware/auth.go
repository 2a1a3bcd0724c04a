package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextUserID gin 上下文中保存用户 ID 的 key
const ContextUserID = "user_id"

// ErrInvalidToken token 无效
var ErrInvalidToken = errors.New("invalid token")

// JWTService 签发和校验 HS256 token
type JWTService struct {
	secret []byte
	issuer string
}

// NewJWT 创建 JWT 服务
func NewJWT(secret []byte, issuer string) *JWTService {
	return &JWTService{secret: secret, issuer: issuer}
}

// GenerateToken 为用户签发 token
func (j *JWTService) GenerateToken(sub string, expires time.Duration) (string, error) {
	if sub == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": j.issuer,
		"sub": sub,
		"iat": now.Unix(),
		"exp": now.Add(expires).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// ParseToken 校验 token 并返回用户 ID
func (j *JWTService) ParseToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return "", fmt.Errorf("%w: missing exp", ErrInvalidToken)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return sub, nil
}

// Auth 要求请求携带有效 token
// 优先读取 Authorization: Bearer 头；WebSocket 握手无法设置头，允许使用 ?token=
func Auth(j *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			return
		}

		userID, err := j.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return "", false
		}
		return parts[1], true
	}
	if token := c.Query("token"); token != "" {
		return token, true
	}
	return "", false
}

// UserID 读取 Auth 中间件写入的用户 ID
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

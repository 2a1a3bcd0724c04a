package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestJWT_RoundTrip(t *testing.T) {
	j := NewJWT([]byte("secret"), "ecoterra")

	token, err := j.GenerateToken("user-42", time.Hour)
	require.NoError(t, err)

	sub, err := j.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", sub)
}

func TestJWT_Rejects(t *testing.T) {
	j := NewJWT([]byte("secret"), "ecoterra")

	expired, err := j.GenerateToken("user-42", -time.Minute)
	require.NoError(t, err)

	otherSecret, err := NewJWT([]byte("other"), "ecoterra").GenerateToken("user-42", time.Hour)
	require.NoError(t, err)

	otherIssuer, err := NewJWT([]byte("secret"), "someone-else").GenerateToken("user-42", time.Hour)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"iss": "ecoterra", "sub": "user-42"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":      expired,
		"other secret": otherSecret,
		"other issuer": otherIssuer,
		"no exp":       noExp,
		"garbage":      "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := j.ParseToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	_, err = j.GenerateToken("", time.Hour)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func newAuthRouter(j *JWTService) *gin.Engine {
	r := gin.New()
	r.GET("/me", Auth(j), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": UserID(c)})
	})
	return r
}

func TestAuth(t *testing.T) {
	j := NewJWT([]byte("secret"), "ecoterra")
	r := newAuthRouter(j)
	token, err := j.GenerateToken("user-42", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{"bearer header", "Bearer " + token, "", http.StatusOK},
		{"lowercase scheme", "bearer " + token, "", http.StatusOK},
		{"query token", "", "?token=" + token, http.StatusOK},
		{"missing", "", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, "", http.StatusUnauthorized},
		{"bad token", "Bearer nope", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"data":"user-42"}`, w.Body.String())
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	r := gin.New()
	r.POST("/feedback", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/feedback", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, do("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, do("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))

	// 其他 IP 不受影响
	assert.Equal(t, http.StatusNoContent, do("10.0.0.2"))
	assert.Equal(t, 2, rl.Size())

	rl.Cleanup(-time.Second)
	assert.Equal(t, 0, rl.Size())
}

func TestRequestIDAndLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := gin.New()
	r.Use(RequestID(), Logger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	id := w.Header().Get(HeaderRequestID)
	assert.Len(t, id, 26)

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(HeaderRequestID, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(HeaderRequestID))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Request handled", entries[0].Message)
	assert.Equal(t, id, entries[0].ContextMap()["request_id"])
	assert.Equal(t, "Request failed", entries[1].Message)
	assert.Equal(t, "abc", entries[1].ContextMap()["request_id"])
}

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"believestore/backend/pkg/jwt"

	"github.com/bmizerany/assert"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"user": ""})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": id.UserID.String(), "name": id.Name})
	})
	r.GET("/", handlers...)
	return r
}

func bearer(t *testing.T, role string) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	token, err := jwt.GenerateToken(testSecret, id, "robin@example.com", "", role, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return id, "Bearer " + token
}

func do(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newTestRouter(AuthMiddleware(testSecret))

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Token abc").Code)

	_, header := bearer(t, "authenticated")
	w := do(r, header)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.T(t, len(w.Body.String()) > 0)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	r := newTestRouter(OptionalAuthMiddleware(testSecret))

	w := do(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"user":""}`, w.Body.String())

	w = do(r, "Bearer garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"user":""}`, w.Body.String())

	id, header := bearer(t, "authenticated")
	w = do(r, header)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"name":"robin","user":"`+id.String()+`"}`, w.Body.String())
}

func TestAdminMiddleware(t *testing.T) {
	r := newTestRouter(AuthMiddleware(testSecret), AdminMiddleware())

	_, user := bearer(t, "authenticated")
	assert.Equal(t, http.StatusForbidden, do(r, user).Code)

	_, admin := bearer(t, "service_role")
	assert.Equal(t, http.StatusOK, do(r, admin).Code)
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/imincognito/socialhub/internal/database"
)

const testSecret = "test-secret"

func signToken(t *testing.T, sub string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return signed
}

func runMiddleware(mw gin.HandlerFunc, authHeader string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	mw(c)
	return w, c
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", testSecret)

	t.Run("Missing token redirects to login", func(t *testing.T) {
		w, c := runMiddleware(AuthMiddleware(), "")

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var body map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "/login.html", body["redirect"])
	})

	t.Run("Invalid token rejected", func(t *testing.T) {
		w, c := runMiddleware(AuthMiddleware(), "Bearer not-a-token")

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid token sets user_id", func(t *testing.T) {
		token := signToken(t, "user-123")
		_, c := runMiddleware(AuthMiddleware(), "Bearer "+token)

		assert.False(t, c.IsAborted())
		assert.Equal(t, "user-123", c.GetString("user_id"))
		assert.Equal(t, token, c.GetString("access_token"))
	})

	t.Run("Wrong signature rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user-123",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("other-secret"))
		assert.NoError(t, err)

		w, c := runMiddleware(AuthMiddleware(), "Bearer "+signed)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAdminOnlyMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer mockDB.Close()

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	originalDB := database.DB
	database.DB = db
	defer func() { database.DB = originalDB }()

	t.Run("Unauthenticated user blocked", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)

		AdminOnlyMiddleware()(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Non-admin forbidden with redirect", func(t *testing.T) {
		mock.ExpectQuery(`SELECT`).WillReturnRows(sqlmock.NewRows([]string{"is_admin"}).AddRow(false))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		c.Set("user_id", "user-123")

		AdminOnlyMiddleware()(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusForbidden, w.Code)

		var body map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "/admin-login.html", body["redirect"])
		assert.Equal(t, "Access denied. Admin privileges required.", body["error"])
	})

	t.Run("Admin passes through", func(t *testing.T) {
		mock.ExpectQuery(`SELECT`).WillReturnRows(sqlmock.NewRows([]string{"is_admin"}).AddRow(true))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		c.Set("user_id", "admin-456")

		AdminOnlyMiddleware()(c)

		assert.False(t, c.IsAborted())
	})
}

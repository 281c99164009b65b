package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/imincognito/socialhub/internal/database"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	originalDB := database.DB
	database.DB = db

	return mock, func() {
		database.DB = originalDB
		mockDB.Close()
	}
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path string, payload map[string]string) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler(c)
	return w
}

func TestSignupUsernameTaken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mock, teardown := setupMockDB(t)
	defer teardown()

	// Le username existe déjà : refus avant tout appel à Supabase Auth,
	// donc aucune autre requête attendue sur la base
	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	w := postJSON(t, Signup, "/api/signup", map[string]string{
		"email":     "jane@example.com",
		"password":  "secret123",
		"username":  "jane",
		"full_name": "Jane Doe",
	})

	assert.Equal(t, http.StatusConflict, w.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Username already taken. Please choose another one.", body["error"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	_, teardown := setupMockDB(t)
	defer teardown()

	w := postJSON(t, Signup, "/api/signup", map[string]string{
		"email":    "jane@example.com",
		"password": "secret123",
		// username manquant
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"keymint.backend/internal/domain/entities"
	"keymint.backend/internal/usecases"
)

func newApiKeyRouter(repo *memApiKeyRepo, users *memUserRepo) *gin.Engine {
	usecase := usecases.NewApiKeyUsecase(repo, users, passthroughUOW{}, nil)
	h := NewApiKeyHandler(usecase)

	r := gin.New()
	r.POST("/create", h.CreateKey)
	r.POST("/users", h.BindUser)
	r.POST("/checkapi", h.ValidateKey)
	r.GET("/keys", h.ListKeys)
	return r
}

func TestCreateKeyEndpoint(t *testing.T) {
	repo := newMemApiKeyRepo()
	r := newApiKeyRouter(repo, newMemUserRepo())

	w := performJSON(t, r, http.MethodPost, "/create", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	value, ok := body["api_key"].(string)
	require.True(t, ok)
	require.Regexp(t, `^sk-[A-Za-z0-9]{40}$`, value)

	_, found := repo.keys[value]
	require.True(t, found, "issued key must be stored")
}

func TestCreateKeyEndpoint_StoreError(t *testing.T) {
	repo := newMemApiKeyRepo()
	repo.createErr = errors.New("connection refused")
	r := newApiKeyRouter(repo, newMemUserRepo())

	w := performJSON(t, r, http.MethodPost, "/create", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "internal server error", decodeBody(t, w)["error"])
}

func TestBindUserEndpoint(t *testing.T) {
	repo := newMemApiKeyRepo()
	users := newMemUserRepo()
	r := newApiKeyRouter(repo, users)

	w := performJSON(t, r, http.MethodPost, "/users", gin.H{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"api_key":    "sk-fresh",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	require.NotEmpty(t, body["user_id"])
	require.Len(t, users.users, 1)

	key := repo.keys["sk-fresh"]
	require.NotNil(t, key)
	require.True(t, key.UserID.Valid)
}

func TestBindUserEndpoint_MissingField(t *testing.T) {
	repo := newMemApiKeyRepo()
	users := newMemUserRepo()
	r := newApiKeyRouter(repo, users)

	w := performJSON(t, r, http.MethodPost, "/users", gin.H{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, users.users)
	require.Empty(t, repo.keys)
}

func TestValidateKeyEndpoint_MissingField(t *testing.T) {
	r := newApiKeyRouter(newMemApiKeyRepo(), newMemUserRepo())

	w := performJSON(t, r, http.MethodPost, "/checkapi", gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateKeyEndpoint_NotFound(t *testing.T) {
	r := newApiKeyRouter(newMemApiKeyRepo(), newMemUserRepo())

	w := performJSON(t, r, http.MethodPost, "/checkapi", gin.H{"api_key": "sk-unknown"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidateKeyEndpoint_Active(t *testing.T) {
	repo := newMemApiKeyRepo()
	repo.keys["sk-live"] = &entities.ApiKey{Key: "sk-live", Status: entities.KeyStatusActive}
	r := newApiKeyRouter(repo, newMemUserRepo())

	w := performJSON(t, r, http.MethodPost, "/checkapi", gin.H{"api_key": "sk-live"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, true, body["valid"])
}

func TestValidateKeyEndpoint_Expired(t *testing.T) {
	repo := newMemApiKeyRepo()
	repo.keys["sk-old"] = &entities.ApiKey{
		Key:       "sk-old",
		Status:    entities.KeyStatusActive,
		ExpiresAt: null.TimeFrom(time.Now().Add(-time.Hour)),
	}
	r := newApiKeyRouter(repo, newMemUserRepo())

	w := performJSON(t, r, http.MethodPost, "/checkapi", gin.H{"api_key": "sk-old"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, false, body["valid"])
	require.Equal(t, entities.KeyStatusOutOfDate, repo.keys["sk-old"].Status)
}

func TestListKeysEndpoint(t *testing.T) {
	repo := newMemApiKeyRepo()
	repo.keys["sk-a"] = &entities.ApiKey{Key: "sk-a", Status: entities.KeyStatusActive}
	repo.keys["sk-b"] = &entities.ApiKey{Key: "sk-b", Status: entities.KeyStatusRevoked}
	r := newApiKeyRouter(repo, newMemUserRepo())

	w := performJSON(t, r, http.MethodGet, "/keys", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.EqualValues(t, 2, body["count"])
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"keymint.backend/internal/domain/entities"
	domainerrors "keymint.backend/internal/domain/errors"
	"keymint.backend/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("development")
}

type memApiKeyRepo struct {
	keys      map[string]*entities.ApiKey
	rows      []*entities.UserKeyRow
	createErr error
	listErr   error
}

func newMemApiKeyRepo() *memApiKeyRepo {
	return &memApiKeyRepo{keys: map[string]*entities.ApiKey{}}
}

func (m *memApiKeyRepo) Create(ctx context.Context, apiKey *entities.ApiKey) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.keys[apiKey.Key]; ok {
		return domainerrors.ErrAlreadyExists
	}
	if apiKey.ID == uuid.Nil {
		apiKey.ID = uuid.New()
	}
	m.keys[apiKey.Key] = apiKey
	return nil
}

func (m *memApiKeyRepo) FindByValue(ctx context.Context, value string) (*entities.ApiKey, error) {
	key, ok := m.keys[value]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return key, nil
}

func (m *memApiKeyRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.KeyStatus) error {
	for _, key := range m.keys {
		if key.ID == id {
			key.Status = status
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (m *memApiKeyRepo) List(ctx context.Context) ([]*entities.ApiKey, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*entities.ApiKey, 0, len(m.keys))
	for _, key := range m.keys {
		out = append(out, key)
	}
	return out, nil
}

func (m *memApiKeyRepo) ListJoinedWithUsers(ctx context.Context) ([]*entities.UserKeyRow, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.rows, nil
}

type memUserRepo struct {
	users map[uuid.UUID]*entities.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uuid.UUID]*entities.User{}}
}

func (m *memUserRepo) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return user, nil
}

type memAdminRepo struct {
	admins map[string]*entities.Admin
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{admins: map[string]*entities.Admin{}}
}

func (m *memAdminRepo) Create(ctx context.Context, admin *entities.Admin) error {
	if _, ok := m.admins[admin.Email]; ok {
		return domainerrors.ErrAlreadyExists
	}
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	m.admins[admin.Email] = admin
	return nil
}

func (m *memAdminRepo) FindByEmail(ctx context.Context, email string) (*entities.Admin, error) {
	admin, ok := m.admins[email]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return admin, nil
}

type passthroughUOW struct{}

func (passthroughUOW) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func performJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

package usecases

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"keymint.backend/internal/domain/entities"
	domainerrors "keymint.backend/internal/domain/errors"
)

type fakeApiKeyRepo struct {
	mu          sync.Mutex
	keys        map[string]*entities.ApiKey
	createErr   error
	updateCalls int
	findCalls   int
}

func newFakeApiKeyRepo() *fakeApiKeyRepo {
	return &fakeApiKeyRepo{keys: map[string]*entities.ApiKey{}}
}

func (f *fakeApiKeyRepo) Create(ctx context.Context, apiKey *entities.ApiKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.keys[apiKey.Key]; ok {
		return domainerrors.ErrAlreadyExists
	}
	if apiKey.ID == uuid.Nil {
		apiKey.ID = uuid.New()
	}
	cp := *apiKey
	f.keys[apiKey.Key] = &cp
	return nil
}

func (f *fakeApiKeyRepo) FindByValue(ctx context.Context, value string) (*entities.ApiKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++
	key, ok := f.keys[value]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *key
	return &cp, nil
}

func (f *fakeApiKeyRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.KeyStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	for _, key := range f.keys {
		if key.ID == id {
			key.Status = status
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (f *fakeApiKeyRepo) List(ctx context.Context) ([]*entities.ApiKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entities.ApiKey, 0, len(f.keys))
	for _, key := range f.keys {
		cp := *key
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeApiKeyRepo) ListJoinedWithUsers(ctx context.Context) ([]*entities.UserKeyRow, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users     map[uuid.UUID]*entities.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entities.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entities.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

type fakeAdminRepo struct {
	admins map[string]*entities.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[string]*entities.Admin{}}
}

func (f *fakeAdminRepo) Create(ctx context.Context, admin *entities.Admin) error {
	if _, ok := f.admins[admin.Email]; ok {
		return domainerrors.ErrAlreadyExists
	}
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	cp := *admin
	f.admins[admin.Email] = &cp
	return nil
}

func (f *fakeAdminRepo) FindByEmail(ctx context.Context, email string) (*entities.Admin, error) {
	admin, ok := f.admins[email]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *admin
	return &cp, nil
}

// fakeUnitOfWork just runs the function; the fakes have no transaction
// semantics to roll back, atomicity is covered by the gorm uow tests.
type fakeUnitOfWork struct {
	calls int
}

func (f *fakeUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeVerdictCache struct {
	entries map[string]string
	puts    int
}

func newFakeVerdictCache() *fakeVerdictCache {
	return &fakeVerdictCache{entries: map[string]string{}}
}

func (f *fakeVerdictCache) Get(ctx context.Context, keyValue string) (string, error) {
	status, ok := f.entries[keyValue]
	if !ok {
		return "", domainerrors.ErrNotFound
	}
	return status, nil
}

func (f *fakeVerdictCache) Put(ctx context.Context, keyValue, status string) error {
	f.puts++
	f.entries[keyValue] = status
	return nil
}

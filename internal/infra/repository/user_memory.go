package repository

import (
	"context"
	"sync"

	"github.com/Yash24242424/cloneverse-express/internal/domain/model"
	domainrepo "github.com/Yash24242424/cloneverse-express/internal/repository"
	"github.com/Yash24242424/cloneverse-express/internal/validator"
)

type userMemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]model.User
	byEmail map[string]string // 小文字のemail -> id
}

// DI
func NewUserMemoryRepository() domainrepo.UserRepository {
	return &userMemoryRepository{
		byID:    map[string]model.User{},
		byEmail: map[string]string{},
	}
}

func (r *userMemoryRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := validator.NormalizeEmail(user.Email)
	if _, ok := r.byEmail[key]; ok {
		return domainrepo.ErrEmailAlreadyUsed
	}
	r.byID[user.ID] = *user
	r.byEmail[key] = user.ID
	return nil
}

func (r *userMemoryRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domainrepo.ErrUserNotFound
	}
	return &u, nil
}

func (r *userMemoryRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[validator.NormalizeEmail(email)]
	if !ok {
		return nil, domainrepo.ErrUserNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *userMemoryRepository) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; !ok {
		return domainrepo.ErrUserNotFound
	}
	r.byID[user.ID] = *user
	return nil
}

package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"driveshare/internal/models"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[primitive.ObjectID]*models.User),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *UserRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}

	for key, value := range updates {
		switch key {
		case "first_name":
			if v, ok := value.(string); ok {
				user.FirstName = v
			}
		case "last_name":
			if v, ok := value.(string); ok {
				user.LastName = v
			}
		case "phone":
			if v, ok := value.(string); ok {
				user.Phone = v
			}
		case "status":
			if v, ok := value.(models.UserStatus); ok {
				user.Status = v
			}
		case "guest_profile":
			if v, ok := value.(*models.GuestProfile); ok {
				user.GuestProfile = v
			}
		case "host_profile":
			if v, ok := value.(*models.HostProfile); ok {
				user.HostProfile = v
			}
		}
	}
	user.UpdatedAt = time.Now()
	return nil
}

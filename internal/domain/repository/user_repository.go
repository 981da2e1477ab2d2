package repository

import (
	"context"

	"github.com/jhoicas/replenishment-planner/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
}

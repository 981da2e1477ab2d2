package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"

	"github.com/jhoicas/replenishment-planner/internal/application/dto"
	"github.com/jhoicas/replenishment-planner/internal/domain"
	"github.com/jhoicas/replenishment-planner/internal/domain/entity"
	"github.com/jhoicas/replenishment-planner/internal/domain/repository"
	"github.com/jhoicas/replenishment-planner/pkg/jwt"
)

const minPasswordLen = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// NormalizeIdentifier recorta espacios y aplica case folding, así "Ana@Mail.com " y "ana@mail.com" son el mismo usuario.
// Un cases.Caser no es seguro entre goroutines: se crea uno por llamada.
func NormalizeIdentifier(identifier string) string {
	return cases.Fold().String(strings.TrimSpace(identifier))
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrIdentifierAlreadyExists si el identificador ya está registrado.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	identifier := NormalizeIdentifier(in.Identifier)
	if identifier == "" || len(in.Password) < minPasswordLen {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrIdentifierAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = identifier
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Identifier:   identifier,
		PasswordHash: string(hash),
		Name:         name,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica identificador/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByIdentifier(ctx, NormalizeIdentifier(in.Identifier))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Me devuelve el usuario autenticado. ErrUserNotFound si el token apunta a un usuario eliminado.
func (uc *AuthUseCase) Me(ctx context.Context, ownerID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Identifier: u.Identifier,
		Name:       u.Name,
		Status:     u.Status,
		CreatedAt:  u.CreatedAt,
	}
}

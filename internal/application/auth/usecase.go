package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/plazave/plaza-api/internal/application/dto"
	"github.com/plazave/plaza-api/internal/domain"
	"github.com/plazave/plaza-api/internal/domain/entity"
	"github.com/plazave/plaza-api/internal/domain/repository"
	"github.com/plazave/plaza-api/pkg/jwt"
)

// TokenConfig parámetros de emisión de tokens JWT.
type TokenConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// UseCase maneja registro y login de usuarios.
type UseCase struct {
	userRepo repository.UserRepository
	tokenCfg TokenConfig
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(userRepo repository.UserRepository, tokenCfg TokenConfig) *UseCase {
	return &UseCase{userRepo: userRepo, tokenCfg: tokenCfg}
}

// Register crea un usuario con la contraseña hasheada con bcrypt.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: correo electrónico inválido", domain.ErrInvalidInput)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleVendedor
	}
	if role != entity.RoleAdmin && role != entity.RoleVendedor {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}

	existing, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear contraseña: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login valida credenciales y emite el token JWT con usuario, empresa y rol.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.tokenCfg.Secret, user.ID, user.CompanyID, user.Role, uc.tokenCfg.Issuer, uc.tokenCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// Me devuelve el usuario autenticado.
func (uc *UseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

func toUserResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		CompanyID: user.CompanyID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
	}
}

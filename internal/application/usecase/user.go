package usecase

import (
	"context"
	"errors"
	"time"

	"eduplatform/internal/application/policy"
	"eduplatform/internal/domain"
	"eduplatform/internal/infrastructure/security"

	"github.com/google/uuid"
)

type UserRepo interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, now time.Time) error
}

type TokenCache interface {
	SaveRefresh(ctx context.Context, userID, refreshToken string) error
	CheckRefresh(ctx context.Context, refreshToken string) (string, error)
	DeleteRefresh(ctx context.Context, refreshToken string) error
}

type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type UserUseCase struct {
	users      UserRepo
	tokenCache TokenCache
	hasher     Hasher
	tokens     *security.TokenManager
	now        func() time.Time
}

func NewUserUseCase(users UserRepo, tc TokenCache, h Hasher, tm *security.TokenManager) *UserUseCase {
	return &UserUseCase{users: users, tokenCache: tc, hasher: h, tokens: tm, now: time.Now}
}

type RegisterInput struct {
	Email    string
	Password string
	Phone    *string
	City     *string
	Avatar   *string
}

func (uc *UserUseCase) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Email:    in.Email,
		Password: hash,
		Phone:    in.Phone,
		City:     in.City,
		Avatar:   in.Avatar,
		IsActive: true,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return "", "", domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", "", domain.ErrInvalidCredentials
	}
	if err := uc.hasher.Compare(user.Password, password); err != nil {
		return "", "", domain.ErrInvalidCredentials
	}

	_ = uc.users.TouchLastLogin(ctx, user.ID, uc.now())

	return uc.generateAndSaveTokens(ctx, user)
}

func (uc *UserUseCase) Refresh(ctx context.Context, oldRefreshToken string) (string, string, error) {
	userID, err := uc.tokens.ValidateRefreshToken(oldRefreshToken)
	if err != nil {
		return "", "", err
	}

	cachedID, err := uc.tokenCache.CheckRefresh(ctx, oldRefreshToken)
	if err != nil || cachedID != userID {
		return "", "", errors.New("token revoked")
	}
	// Старый токен одноразовый
	_ = uc.tokenCache.DeleteRefresh(ctx, oldRefreshToken)

	id, err := uuid.Parse(userID)
	if err != nil {
		return "", "", err
	}
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return "", "", err
	}
	return uc.generateAndSaveTokens(ctx, user)
}

func (uc *UserUseCase) generateAndSaveTokens(ctx context.Context, user *domain.User) (string, string, error) {
	access, refresh, err := uc.tokens.Generate(user.ID.String(), user.Email, user.RoleNames())
	if err != nil {
		return "", "", err
	}
	if err := uc.tokenCache.SaveRefresh(ctx, user.ID.String(), refresh); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (uc *UserUseCase) List(ctx context.Context) ([]domain.User, error) {
	return uc.users.List(ctx)
}

func (uc *UserUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.users.GetByID(ctx, id)
}

type UpdateUserInput struct {
	Phone  *string
	City   *string
	Avatar *string
}

// Профиль правит только сам пользователь.
func (uc *UserUseCase) Update(ctx context.Context, actor policy.Principal, id uuid.UUID, in UpdateUserInput) (*domain.User, error) {
	if actor.ID != id {
		return nil, domain.ErrForbidden
	}
	fields := map[string]interface{}{}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.City != nil {
		fields["city"] = *in.City
	}
	if in.Avatar != nil {
		fields["avatar"] = *in.Avatar
	}
	if len(fields) > 0 {
		if err := uc.users.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return uc.users.GetByID(ctx, id)
}

func (uc *UserUseCase) Delete(ctx context.Context, actor policy.Principal, id uuid.UUID) error {
	if actor.ID != id {
		return domain.ErrForbidden
	}
	return uc.users.Delete(ctx, id)
}

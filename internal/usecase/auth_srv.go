package usecase

import (
	"context"
	"fmt"
	"time"

	"order-management/internal/data/entity"
	"order-management/internal/data/repository"
	"order-management/internal/dto/request"
	"order-management/internal/dto/response"
	"order-management/pkg/token"
	"order-management/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.TokenPairResponse, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, user *entity.User) error

	// RefreshTokenMaxAge dipakai handler untuk cookie login
	RefreshTokenMaxAge() time.Duration
}

type authService struct {
	repo   *repository.Repository
	maker  *token.Maker
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	maker *token.Maker,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		maker:  maker,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	// 1. Cek email sudah terdaftar
	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing email: %w", err)
	}
	if existing != nil {
		s.log.Warn("Register rejected, email already exists", zap.String("email", req.Email))
		return nil, ErrDuplicateEmail
	}

	// 2. Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. Simpan user
	now := time.Now().UTC()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hashed,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// Dua register bersamaan bisa sama-sama lolos cek di atas;
		// unique constraint di email jadi penentu terakhir.
		if repository.IsUniqueViolation(err) {
			s.log.Warn("Register lost duplicate race", zap.String("email", req.Email))
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.log.Info("New user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

// authenticate balikin ErrInvalidCredentials yang sama untuk email tidak
// dikenal maupun password salah, supaya response tidak membocorkan mana
// yang terjadi.
func (s *authService) authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user for login: %w", err)
	}
	if user == nil {
		s.log.Warn("Login failed, user not found", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.log.Warn("Login failed, wrong password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.TokenPairResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// Access token pendek, refresh token panjang; keduanya lewat codec
	// yang sama, dibedakan claim type.
	accessToken, err := s.maker.Issue(
		user.ID.String(), user.Email,
		token.KindAccess, s.accessTokenTTL(),
	)
	if err != nil {
		s.log.Error("Failed to issue access token", zap.Error(err))
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refreshToken, err := s.createRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info("Tokens issued",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	return &response.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// createRefreshToken menerbitkan refresh token baru dan menyimpannya lewat
// upsert keyed user_id: token lama user langsung tergantikan dalam satu
// statement, jadi invariannya satu refresh token hidup per user.
func (s *authService) createRefreshToken(ctx context.Context, user *entity.User) (string, error) {
	ttl := s.RefreshTokenMaxAge()

	refreshToken, err := s.maker.Issue(
		user.ID.String(), user.Email,
		token.KindRefresh, ttl,
	)
	if err != nil {
		s.log.Error("Failed to issue refresh token", zap.Error(err))
		return "", fmt.Errorf("issue refresh token: %w", err)
	}

	now := time.Now().UTC()
	row := &entity.RefreshToken{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: now.Add(ttl),
	}

	if err := s.repo.RefreshToken.Upsert(ctx, row); err != nil {
		return "", err
	}

	s.log.Info("Refresh token stored", zap.String("user_id", user.ID.String()))
	return refreshToken, nil
}

// RefreshAccessToken menukar refresh token dengan access token baru.
// Baris di database adalah mekanisme revokasi yang sebenarnya: signature
// yang masih valid tidak cukup kalau barisnya sudah dihapus.
func (s *authService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.maker.Verify(refreshToken)
	if err != nil {
		s.log.Warn("Refresh rejected, token verify failed", zap.Error(err))
		return "", ErrInvalidRefreshToken
	}

	if claims.Kind != token.KindRefresh {
		s.log.Warn("Refresh rejected, wrong token kind", zap.String("kind", string(claims.Kind)))
		return "", ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("find user for refresh: %w", err)
	}
	if user == nil {
		s.log.Warn("Refresh rejected, user gone", zap.String("user_id", claims.Subject))
		return "", ErrInvalidRefreshToken
	}

	stored, err := s.repo.RefreshToken.FindByToken(ctx, refreshToken)
	if err != nil {
		return "", fmt.Errorf("find stored refresh token: %w", err)
	}
	if stored == nil {
		s.log.Warn("Refresh rejected, no stored token", zap.String("user_id", user.ID.String()))
		return "", ErrInvalidRefreshToken
	}

	if stored.ExpiresAt.Before(time.Now().UTC()) {
		// Baris kadaluarsa dibersihkan sekalian; refresh berikutnya
		// dengan string yang sama tetap ditolak.
		if err := s.repo.RefreshToken.DeleteByToken(ctx, refreshToken); err != nil {
			s.log.Warn("Failed to delete expired refresh token", zap.Error(err))
		}
		s.log.Warn("Refresh rejected, stored token expired", zap.String("user_id", user.ID.String()))
		return "", ErrInvalidRefreshToken
	}

	// Refresh token tidak ikut dirotasi di sini, hanya access token baru
	accessToken, err := s.maker.Issue(
		user.ID.String(), user.Email,
		token.KindAccess, s.accessTokenTTL(),
	)
	if err != nil {
		s.log.Error("Failed to issue access token on refresh", zap.Error(err))
		return "", fmt.Errorf("issue access token: %w", err)
	}

	s.log.Info("Access token refreshed", zap.String("user_id", user.ID.String()))
	return accessToken, nil
}

// Logout menghapus baris refresh token user. Access token yang masih hidup
// tetap jalan sampai expiry, tapi tidak bisa diperpanjang lagi.
func (s *authService) Logout(ctx context.Context, user *entity.User) error {
	if err := s.repo.RefreshToken.DeleteByUserID(ctx, user.ID); err != nil {
		return err
	}

	s.log.Info("User logged out", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) accessTokenTTL() time.Duration {
	return time.Duration(s.config.JWT.AccessExpiryMin) * time.Minute
}

func (s *authService) RefreshTokenMaxAge() time.Duration {
	return time.Duration(s.config.JWT.RefreshExpiryDays) * 24 * time.Hour
}

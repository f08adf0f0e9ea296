package service

import (
	"context"
	"errors"
	"firstaid_backend/internal/config"
	"firstaid_backend/internal/model"
	"firstaid_backend/internal/repository"
	"firstaid_backend/internal/util"
	"firstaid_backend/pkg/logger"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cache    LeaderboardCache
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cache LeaderboardCache, cfg *config.Config) *AuthService {
	if cache == nil {
		cache = NoopLeaderboardCache{}
	}
	return &AuthService{
		UserRepo: userRepo,
		Cache:    cache,
		Cfg:      cfg,
	}
}

// Register creates a student account. The caller establishes the session.
// Every user is ranked, so a new account drops the cached leaderboard.
func (s *AuthService) Register(ctx context.Context, username, password, confirmPassword string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if password != confirmPassword {
		return nil, util.ErrPasswordMismatch
	}

	exists, err := s.UserRepo.ExistsByUsername(username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Password: string(hashedPassword),
		Role:     model.Student,
	}
	if err := s.UserRepo.Create(user); err != nil {
		// The unique index settles a race the exists check lost.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrUsernameTaken
		}
		return nil, err
	}

	if err := s.Cache.Invalidate(ctx); err != nil {
		logger.Log.Warn("Failed to invalidate leaderboard cache", zap.Error(err))
	}
	return user, nil
}

// Login checks the credentials and issues a bearer token alongside the user.
func (s *AuthService) Login(username, password string) (*model.User, string, error) {
	user, err := s.UserRepo.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", util.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) GetUser(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

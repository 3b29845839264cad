package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"friender/pkg/dto"
	"friender/pkg/geo"
	"friender/pkg/logger"
	"friender/pkg/middleware"
	"friender/pkg/models"
	eventtypes "friender/pkg/types/eventtype"
	"friender/services/auth/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = repository.ErrEmailTaken
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type UserEventPublisher interface {
	PublishUserCreated(event eventtypes.UserCreatedEvent) error
}

type AuthService struct {
	repo       UserStore
	locator    *geo.Table
	emitter    UserEventPublisher
	secret     string
	tokenTTL   time.Duration
	bcryptCost int
}

// NewAuthService: emitter may be nil.
func NewAuthService(repo UserStore, locator *geo.Table, emitter UserEventPublisher, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		repo:       repo,
		locator:    locator,
		emitter:    emitter,
		secret:     secret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// Signup creates the user and returns an access token for it.
func (s *AuthService) Signup(ctx context.Context, req dto.SignupRequest) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		ImageURL:  req.ImageURL,
		Bio:       req.Bio,
		Location:  req.Location,
		Radius:    req.Radius,
		Password:  string(hashed),
	}
	if user.ImageURL == "" {
		user.ImageURL = models.DefaultImageURL
	}
	if user.Radius == 0 {
		user.Radius = models.DefaultRadius
	}

	if err := s.repo.CreateUser(ctx, &user); err != nil {
		return "", err
	}

	logger.Info(logger.LogEventSignup, "user signed up", map[string]interface{}{
		"user_id":  user.ID,
		"location": user.Location,
	})
	if s.locator != nil && !s.locator.Has(user.Location) {
		logger.Warn(logger.LogEventWarning, "location missing from postal table", map[string]interface{}{
			"user_id":  user.ID,
			"location": user.Location,
		})
	}

	if s.emitter != nil {
		event := eventtypes.UserCreatedEvent{UserID: user.ID, Location: user.Location, Radius: user.Radius}
		if err := s.emitter.PublishUserCreated(event); err != nil {
			// match 서비스는 최근 가입자를 인덱스와 별도로 조회한다
			logger.Logger.Warn().Err(err).Uint("user_id", user.ID).Msg("⚠️ user.created not published")
		}
	}

	return middleware.GenerateToken(s.secret, user.ID, s.tokenTTL)
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return middleware.GenerateToken(s.secret, user.ID, s.tokenTTL)
}

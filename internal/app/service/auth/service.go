package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fatflowers/tryonce/internal/models"
	"github.com/fatflowers/tryonce/internal/platform/db"
	cfgpkg "github.com/fatflowers/tryonce/pkg/config"
	"github.com/fatflowers/tryonce/pkg/logctx"
	"github.com/fatflowers/tryonce/pkg/tool"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
)

const minPasswordLen = 8

type RegisterRequest struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Session is the outcome of a successful register or login.
type Session struct {
	User  *models.User
	Token string
}

// Authenticator is consumed by the auth routes and the RequireAuth middleware.
type Authenticator interface {
	Register(ctx context.Context, req *RegisterRequest) (*Session, error)
	Login(ctx context.Context, req *LoginRequest) (*Session, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	VerifyToken(token string) (string, error)
}

type Service struct {
	users  *mongo.Collection
	tokens *Tokens
	log    *zap.SugaredLogger
}

func NewService(h *db.Handle, cfg *cfgpkg.Config, log *zap.SugaredLogger) *Service {
	return &Service{
		users:  h.Collection(models.User{}),
		tokens: NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		log:    log,
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLen {
		return "", ErrPasswordTooShort
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*Session, error) {
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &models.User{
		ID:           tool.GenerateUUIDV7(),
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         models.UserRoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("user registered", "user_id", u.ID)
	return s.session(u)
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*Session, error) {
	var u models.User
	err := s.users.FindOne(ctx, bson.D{{Key: "email", Value: normalizeEmail(req.Email)}}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !CheckPassword(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.session(&u)
}

func (s *Service) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.users.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &u, nil
}

func (s *Service) VerifyToken(token string) (string, error) {
	return s.tokens.Parse(token)
}

func (s *Service) session(u *models.User) (*Session, error) {
	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Token: tok}, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/common"
	"github.com/dmitrijs2005/newsdigest/internal/cryptox"
	"github.com/dmitrijs2005/newsdigest/internal/dbx"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
	"github.com/dmitrijs2005/newsdigest/internal/server/auth"
	"github.com/dmitrijs2005/newsdigest/internal/server/models"
	"github.com/dmitrijs2005/newsdigest/internal/server/repositories/repomanager"
)

// Session is a signed-in identity and the cookie value that proves it.
type Session struct {
	User    models.Identity
	Token   string
	Expires time.Time
}

// UserService handles signup, login and session verification.
type UserService struct {
	db              dbx.DBTX
	repomanager     repomanager.RepositoryManager
	jwtSecret       []byte
	sessionLifetime time.Duration
	log             logging.Logger
}

// NewUserService constructs a UserService. db may be nil for the in-memory
// repository manager.
func NewUserService(db dbx.DBTX, m repomanager.RepositoryManager, secret string, lifetime time.Duration, log logging.Logger) *UserService {
	return &UserService{
		db:              db,
		repomanager:     m,
		jwtSecret:       []byte(secret),
		sessionLifetime: lifetime,
		log:             log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an account and signs it in. The name defaults to the local
// part of the email.
func (s *UserService) Signup(ctx context.Context, email, password, name string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	pw := []byte(password)
	salt, verifier := cryptox.NewVerifier(pw)
	common.WipeByteArray(pw)

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{Email: email, Name: name, Salt: salt, Verifier: verifier})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		s.log.Error(ctx, "error creating user", "error", err)
		return nil, common.ErrorInternal
	}

	s.log.Info(ctx, "user signed up", "user_id", user.ID)
	return s.newSession(user.Identity())
}

// Login verifies the credentials. Unknown emails and wrong passwords both
// yield common.ErrorUnauthorized after the same amount of work.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			cryptox.CheckPassword(pw, s.getRandomSalt(), nil)
			return nil, common.ErrorUnauthorized
		}
		s.log.Error(ctx, "error loading user", "error", err)
		return nil, common.ErrorInternal
	}

	if !cryptox.CheckPassword(pw, user.Salt, user.Verifier) {
		return nil, common.ErrorUnauthorized
	}
	return s.newSession(user.Identity())
}

// Authenticate returns the identity behind a session cookie value.
func (s *UserService) Authenticate(token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, common.ErrorUnauthorized
	}
	id, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	return id, nil
}

// SessionLifetime is how long a new session cookie stays valid.
func (s *UserService) SessionLifetime() time.Duration {
	return s.sessionLifetime
}

func (s *UserService) getRandomSalt() []byte { return common.GenerateRandByteArray(cryptox.SaltSize) }

func (s *UserService) newSession(id models.Identity) (*Session, error) {
	token, err := auth.GenerateToken(id, s.jwtSecret, s.sessionLifetime)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &Session{User: id, Token: token, Expires: time.Now().Add(s.sessionLifetime)}, nil
}

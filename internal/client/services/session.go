package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/newsdigest/internal/client/api"
	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
)

var ErrMissingCredentials = errors.New("email and password are required")

// SessionController owns the authentication state. It starts Unknown and
// leaves it exactly once, through Resolve, Login, Signup or Logout.
type SessionController struct {
	gw  api.Client
	log logging.Logger

	mu        sync.Mutex
	current   models.Session
	observers map[int]func(models.Session)
	nextID    int
}

func NewSessionController(gw api.Client, log logging.Logger) *SessionController {
	return &SessionController{
		gw:        gw,
		log:       log,
		current:   models.Session{State: models.SessionUnknown},
		observers: map[int]func(models.Session){},
	}
}

// Current returns a snapshot of the session.
func (c *SessionController) Current() models.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Subscribe registers fn for every transition and returns a function that
// removes it. Observers run synchronously, in no particular order, after
// the state is updated.
func (c *SessionController) Subscribe(fn func(models.Session)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

func (c *SessionController) set(s models.Session) {
	c.mu.Lock()
	c.current = s
	fns := make([]func(models.Session), 0, len(c.observers))
	for _, fn := range c.observers {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

// Resolve performs the startup identity check. Any failure, including an
// unreachable server, resolves to Anonymous.
func (c *SessionController) Resolve(ctx context.Context) models.Session {
	s := models.Anonymous()
	if u := c.gw.GetUser(ctx); u != nil {
		s = models.Authenticated(u)
	}
	c.log.Info(ctx, "session resolved", "state", s.State)
	c.set(s)
	return s
}

// Login authenticates with email and password. On failure the state is
// left as it was and the error is returned for inline display.
func (c *SessionController) Login(ctx context.Context, email, password string) (models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return c.Current(), ErrMissingCredentials
	}

	u, err := c.gw.Login(ctx, email, password)
	if err != nil {
		return c.Current(), fmt.Errorf("login: %w", err)
	}
	return c.authenticated(ctx, u), nil
}

// Signup creates an account and signs it in.
func (c *SessionController) Signup(ctx context.Context, email, password, name string) (models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return c.Current(), ErrMissingCredentials
	}

	u, err := c.gw.Signup(ctx, email, password, strings.TrimSpace(name))
	if err != nil {
		return c.Current(), fmt.Errorf("signup: %w", err)
	}
	return c.authenticated(ctx, u), nil
}

func (c *SessionController) authenticated(ctx context.Context, u *models.User) models.Session {
	s := models.Authenticated(u)
	c.log.Info(ctx, "signed in", "email", u.Email)
	c.set(s)
	return s
}

// Logout ends the session. The remote call is best effort: the local state
// becomes Anonymous whatever it returns.
func (c *SessionController) Logout(ctx context.Context) models.Session {
	if err := c.gw.Logout(ctx); err != nil {
		c.log.Warn(ctx, "remote logout failed", "error", err)
	}
	s := models.Anonymous()
	c.log.Info(ctx, "signed out")
	c.set(s)
	return s
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/newsdigest/internal/client/api"
	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_StartsUnknown(t *testing.T) {
	c := NewSessionController(&fakeGateway{}, logging.Nop())
	assert.Equal(t, models.SessionUnknown, c.Current().State)
}

func TestSession_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("identity present", func(t *testing.T) {
		gw := &fakeGateway{user: &models.User{ID: "u1", Email: "a@b.c"}}
		c := NewSessionController(gw, logging.Nop())
		s := c.Resolve(ctx)
		assert.True(t, s.IsAuthenticated())
		assert.Equal(t, "u1", c.Current().Identity.ID)
	})

	t.Run("no identity or failure is anonymous", func(t *testing.T) {
		c := NewSessionController(&fakeGateway{}, logging.Nop())
		s := c.Resolve(ctx)
		assert.Equal(t, models.SessionAnonymous, s.State)
		assert.Nil(t, s.Identity)
	})
}

func TestSession_ObserversSeeEveryTransition(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{loginUser: &models.User{ID: "u1"}}
	c := NewSessionController(gw, logging.Nop())

	var seen []models.SessionState
	unsubscribe := c.Subscribe(func(s models.Session) { seen = append(seen, s.State) })

	c.Resolve(ctx)
	_, err := c.Login(ctx, "a@b.c", "pw")
	require.NoError(t, err)
	c.Logout(ctx)

	assert.Equal(t, []models.SessionState{models.SessionAnonymous, models.SessionAuthenticated, models.SessionAnonymous}, seen)

	unsubscribe()
	c.Resolve(ctx)
	assert.Len(t, seen, 3)
}

func TestSession_LoginFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{loginErr: &api.RequestError{Status: 401, Message: "Invalid email or password"}}
	c := NewSessionController(gw, logging.Nop())
	c.Resolve(ctx)

	notified := 0
	c.Subscribe(func(models.Session) { notified++ })

	s, err := c.Login(ctx, "a@b.c", "bad")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, "Invalid email or password", api.Message(err))
	assert.Equal(t, models.SessionAnonymous, s.State)
	assert.Equal(t, 0, notified)
}

func TestSession_MissingCredentials(t *testing.T) {
	c := NewSessionController(&fakeGateway{}, logging.Nop())
	_, err := c.Login(context.Background(), "  ", "pw")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	_, err = c.Signup(context.Background(), "a@b.c", "", "Ann")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestSession_Signup(t *testing.T) {
	c := NewSessionController(&fakeGateway{}, logging.Nop())
	s, err := c.Signup(context.Background(), " ann@x.io ", "pw", " Ann ")
	require.NoError(t, err)
	require.True(t, s.IsAuthenticated())
	assert.Equal(t, "ann@x.io", s.Identity.Email)
	assert.Equal(t, "Ann", s.Identity.Name)
}

func TestSession_LogoutIsAnonymousEvenWhenRemoteFails(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		user:      &models.User{ID: "u1"},
		logoutErr: errors.Join(api.ErrUnavailable, context.DeadlineExceeded),
	}
	c := NewSessionController(gw, logging.Nop())
	require.True(t, c.Resolve(ctx).IsAuthenticated())

	s := c.Logout(ctx)
	assert.Equal(t, models.SessionAnonymous, s.State)
	assert.Equal(t, models.SessionAnonymous, c.Current().State)
	assert.Equal(t, 1, gw.logoutCalls)
}

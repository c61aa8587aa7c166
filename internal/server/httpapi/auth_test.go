package httpapi

import (
	"net/http"
	"testing"

	"github.com/dmitrijs2005/newsdigest/internal/common"
	"github.com/dmitrijs2005/newsdigest/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupLoginLogout(t *testing.T) {
	e := newTestEnv(t, nil)

	rec := e.do(t, http.MethodPost, "/auth/signup", map[string]string{"email": "Ann@Example.com", "password": "pw"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "Signup successful", body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "ann@example.com", user["email"])
	assert.Equal(t, "ann", user["name"])

	cookie := sessionFrom(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)

	rec = e.do(t, http.MethodGet, "/auth/user", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ann@example.com", decode(t, rec)["email"])

	rec = e.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "ann@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful", decode(t, rec)["message"])
	assert.NotEmpty(t, sessionFrom(t, rec).Value)

	rec = e.do(t, http.MethodPost, "/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged out successfully", decode(t, rec)["message"])
	cleared := sessionFrom(t, rec)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestSignupErrors(t *testing.T) {
	e := newTestEnv(t, nil)

	rec := e.do(t, http.MethodPost, "/auth/signup", map[string]string{"email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email and password are required", decode(t, rec)["error"])

	rec = e.do(t, http.MethodPost, "/auth/signup", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/auth/signup", map[string]string{"email": "x@example.com", "password": "pw"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = e.do(t, http.MethodPost, "/auth/signup", map[string]string{"email": "x@example.com", "password": "pw"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User already exists", decode(t, rec)["error"])
}

func TestLoginRejected(t *testing.T) {
	e := newTestEnv(t, nil)
	rec := e.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "ghost@example.com", "password": "pw"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decode(t, rec)["error"])
	assert.Empty(t, rec.Result().Cookies())
}

func TestUserWithoutSession(t *testing.T) {
	e := newTestEnv(t, nil)

	rec := e.do(t, http.MethodGet, "/auth/user", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authenticated", decode(t, rec)["error"])

	rec = e.do(t, http.MethodGet, "/auth/user", nil, &http.Cookie{Name: common.SessionCookieName, Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRateLimit(t *testing.T) {
	e := newTestEnv(t, func(c *config.Config) { c.AuthRateLimit = 2 })
	creds := map[string]string{"email": "ghost@example.com", "password": "pw"}

	assert.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodPost, "/auth/login", creds).Code)
	assert.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodPost, "/auth/login", creds).Code)
	rec := e.do(t, http.MethodPost, "/auth/login", creds)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// other endpoints are not limited
	assert.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodGet, "/auth/user", nil).Code)
}

func TestSecureCookieBehindTLSProxy(t *testing.T) {
	e := newTestEnv(t, nil)
	req := newJSONRequest(t, http.MethodPost, "/auth/signup", map[string]string{"email": "s@example.com", "password": "pw"})
	req.Header.Set("X-Forwarded-Proto", "https")

	rec := serve(e, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	c := sessionFrom(t, rec)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteNoneMode, c.SameSite)
}

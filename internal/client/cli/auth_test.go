package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_EmailReadError(t *testing.T) {
	env := newTestEnv(t)
	a, _ := env.newApp(t)

	boom := errors.New("stdin closed")
	origST := getSimpleText
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return "", boom }
	t.Cleanup(func() { getSimpleText = origST })

	assert.ErrorIs(t, a.Login(context.Background()), boom)
	assert.False(t, a.isLoggedIn())
}

func TestLogin_PasswordReadError(t *testing.T) {
	env := newTestEnv(t)
	a, _ := env.newApp(t)
	stubCredentials(t, "bob@example.com", "")

	boom := errors.New("not a terminal")
	getPassword = func(_ io.Writer) ([]byte, error) { return nil, boom }

	assert.ErrorIs(t, a.Login(context.Background()), boom)
	assert.False(t, a.isLoggedIn())
}

func TestLogin_WipesPassword(t *testing.T) {
	env := newTestEnv(t)
	a, _ := env.newApp(t)
	stubCredentials(t, "bob@example.com", "")

	pw := []byte("hunter2")
	getPassword = func(_ io.Writer) ([]byte, error) { return pw, nil }

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, make([]byte, len(pw)), pw)
}

func TestLogout_NotLoggedIn(t *testing.T) {
	env := newTestEnv(t)
	a, out := env.newApp(t)

	require.Error(t, a.Logout(context.Background()))
	assert.Contains(t, out.String(), "Not logged in.")
}

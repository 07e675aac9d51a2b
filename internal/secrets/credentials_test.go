package secrets

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestResolverPrefersEnvOverKeyring(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, Set(JoobleAPIKey, "from-keyring"))

	env := map[string]string{JoobleAPIKey: " from-env "}
	r := Resolver{Getenv: func(k string) string { return env[k] }, UseKeyring: true}
	assert.Equal(t, "from-env", r.Lookup(JoobleAPIKey))

	delete(env, JoobleAPIKey)
	assert.Equal(t, "from-keyring", r.Lookup(JoobleAPIKey))

	r.UseKeyring = false
	assert.Equal(t, "", r.Lookup(JoobleAPIKey))
}

func TestSetRejectsUnknownNames(t *testing.T) {
	keyring.MockInit()
	err := Set("AWS_SECRET", "x")
	assert.True(t, errors.Is(err, ErrUnknownCredential))
	assert.Error(t, Set(MuseAPIKey, "  "))
}

func TestDeleteAndStatus(t *testing.T) {
	keyring.MockInit()
	r := Resolver{Getenv: func(string) string { return "" }, UseKeyring: true}

	require.NoError(t, Set(USAJobsAPIKey, "k"))
	st := r.Status()
	assert.True(t, st[USAJobsAPIKey])
	assert.False(t, st[AdzunaAppID])
	assert.Len(t, st, len(Known))

	require.NoError(t, Delete(USAJobsAPIKey))
	require.NoError(t, Delete(USAJobsAPIKey))
	assert.False(t, r.Status()[USAJobsAPIKey])
}

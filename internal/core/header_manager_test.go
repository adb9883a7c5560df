package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderManager_Priority(t *testing.T) {
	hm, err := NewHeaderManager(
		map[string]string{"user-agent": "ConfigBot/1.0", "X-Team": "growth"},
		[]string{"User-Agent: CliBot/2.0", "Authorization: Bearer secret-token-value"},
	)
	require.NoError(t, err)

	headers, err := hm.GetHeaders()
	require.NoError(t, err)

	assert.Equal(t, "CliBot/2.0", headers.Get("User-Agent"))
	assert.Equal(t, "growth", headers.Get("X-Team"))
	assert.Equal(t, "en-US,en;q=0.9", headers.Get("Accept-Language"))
	assert.Equal(t, "Bearer secret-token-value", headers.Get("Authorization"))

	safe := hm.GetSafeHeaders()
	assert.NotContains(t, safe["Authorization"], "secret-token-value")
}

func TestHeaderManager_Defaults(t *testing.T) {
	hm, err := NewHeaderManager(nil, nil)
	require.NoError(t, err)

	headers, err := hm.GetHeaders()
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, headers.Get("User-Agent"))

	// callers may mutate the returned header freely
	headers.Set("User-Agent", "changed")
	again, err := hm.GetHeaders()
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, again.Get("User-Agent"))
}

func TestHeaderManager_Invalid(t *testing.T) {
	_, err := NewHeaderManager(nil, []string{"no colon here"})
	assert.Error(t, err)

	hm, err := NewHeaderManager(map[string]string{"Host": "evil.test"}, nil)
	require.NoError(t, err)
	_, err = hm.GetHeaders()
	assert.Error(t, err)

	hm, err = NewHeaderManager(nil, []string{"Bad Name: value"})
	require.NoError(t, err)
	_, err = hm.GetHeaders()
	assert.Error(t, err)
}

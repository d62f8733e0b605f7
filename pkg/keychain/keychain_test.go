package keychain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestSetGet(t *testing.T) {
	keyring.MockInit()

	require.NoError(t, Set("main", "123:abc"))

	secret, err := Get("main")
	require.NoError(t, err)
	assert.Equal(t, "123:abc", secret)

	require.NoError(t, Set("main", "456:def"))
	secret, err = Get("main")
	require.NoError(t, err)
	assert.Equal(t, "456:def", secret)
}

func TestGet_NotFound(t *testing.T) {
	keyring.MockInit()

	_, err := Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmptyAccount(t *testing.T) {
	keyring.MockInit()

	_, err := Get("")
	assert.ErrorIs(t, err, ErrEmptyAccount)
	assert.ErrorIs(t, Set("", "x"), ErrEmptyAccount)
}

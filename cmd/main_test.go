package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/m04kA/SMC-BotCore/internal/config"
	"github.com/m04kA/SMC-BotCore/internal/worker"
	"github.com/m04kA/SMC-BotCore/pkg/keychain"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	assert.ElementsMatch(t, []string{"run", "publish-commands", "reset-cursor", "store-token"}, names)

	flag := root.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, defaultConfigPath, flag.DefValue)
}

func TestStoreTokenCmd(t *testing.T) {
	keyring.MockInit()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetIn(strings.NewReader("  123:abc  \n"))
	root.SetOut(&out)
	root.SetArgs([]string{"store-token", "--account", "staging"})

	require.NoError(t, root.Execute())

	token, err := keychain.Get("staging")
	require.NoError(t, err)
	assert.Equal(t, "123:abc", token)
	assert.Contains(t, out.String(), `"staging"`)
}

func TestStoreTokenCmd_Empty(t *testing.T) {
	keyring.MockInit()

	root := newRootCmd()
	root.SetIn(strings.NewReader(""))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"store-token"})

	err := root.Execute()

	assert.ErrorIs(t, err, errEmptyToken)
}

func TestPollerConfig(t *testing.T) {
	cfg := pollerConfig(config.PollingConfig{
		Limit:             50,
		Timeout:           25,
		AllowedUpdates:    []string{"message"},
		StartupMode:       config.StartupModeResume,
		RetryBackoffMs:    250,
		MaxRetryBackoffMs: 4000,
	})

	assert.Equal(t, 50, cfg.Limit)
	assert.Equal(t, 25*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"message"}, cfg.AllowedUpdates)
	assert.Equal(t, worker.StartupResume, cfg.StartupMode)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryBackoff)
	assert.Equal(t, 4*time.Second, cfg.MaxRetryBackoff)

	assert.Equal(t, worker.StartupDiscard, pollerConfig(config.PollingConfig{StartupMode: config.StartupModeDiscard}).StartupMode)
}

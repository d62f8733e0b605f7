package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-BotCore/pkg/keychain"
)

var (
	errPublishFailed   = errors.New("cmd.publish-commands: bot command menu not published")
	errNoCursorStorage = errors.New("cmd.reset-cursor: database is disabled, nothing to reset")
	errEmptyToken      = errors.New("cmd.store-token: token is empty")
)

func newPublishCommandsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "publish-commands",
		Short: "Publish the registered command menu via setMyCommands and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			commands := a.registry.Descriptions()
			if !a.telegram.PublishCommands(commands) {
				return errPublishFailed
			}

			a.log.Info("Published %d bot commands", len(commands))
			fmt.Fprintf(cmd.OutOrStdout(), "published %d commands for @%s\n", len(commands), a.client.Username())

			return nil
		},
	}
}

func newResetCursorCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-cursor",
		Short: "Drop the persisted polling cursor so the next resume start discards the backlog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.db == nil {
				return errNoCursorStorage
			}

			if err := a.store.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("failed to reset cursor: %w", err)
			}

			a.log.Info("Polling cursor of @%s reset", a.client.Username())
			fmt.Fprintf(cmd.OutOrStdout(), "cursor of @%s reset\n", a.client.Username())

			return nil
		},
	}
}

// newStoreTokenCmd сохраняет токен бота из первой строки stdin в системное хранилище секретов
func newStoreTokenCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "store-token",
		Short: "Read a bot token from stdin and store it in the OS keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			token := strings.TrimSpace(line)
			if token == "" {
				if err != nil {
					return fmt.Errorf("%w: %v", errEmptyToken, err)
				}
				return errEmptyToken
			}

			if err := keychain.Set(account, token); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "token stored for account %q, set telegram.token_keyring_account to use it\n", account)

			return nil
		},
	}
	cmd.Flags().StringVar(&account, "account", "main", "keyring account name")

	return cmd
}

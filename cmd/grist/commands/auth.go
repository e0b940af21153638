package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gristlabs/grist-go/internal/constants"
	"github.com/gristlabs/grist-go/pkg/gristclient"
)

// ErrEmptyAPIKey is returned when the login prompt reads an empty key.
var ErrEmptyAPIKey = errors.New("API key must not be empty")

// NewAuthCommand creates the authentication command group.
func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage API credentials",
		Long:  "Store and remove the API key used by the CLI and client libraries",
	}

	cmd.AddCommand(newAuthLoginCommand())
	cmd.AddCommand(newAuthLogoutCommand())

	return cmd
}

func newAuthLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Store an API key",
		Long:  "Prompt for an API key and store it in the key file in your home directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print("API key: ")

			raw, err := term.ReadPassword(int(os.Stdin.Fd()))

			fmt.Println()

			if err != nil {
				return fmt.Errorf("reading API key: %w", err)
			}

			key := strings.TrimSpace(string(raw))
			if key == "" {
				return ErrEmptyAPIKey
			}

			path, err := gristclient.KeyFilePath()
			if err != nil {
				return err
			}

			err = os.WriteFile(path, []byte(key+"\n"), constants.KeyFilePerm)
			if err != nil {
				return fmt.Errorf("writing key file: %w", err)
			}

			fmt.Printf("API key stored in %s\n", path)

			return nil
		},
	}
}

func newAuthLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := gristclient.KeyFilePath()
			if err != nil {
				return err
			}

			err = os.Remove(path)
			if err != nil {
				if os.IsNotExist(err) {
					fmt.Println("No stored API key")

					return nil
				}

				return fmt.Errorf("removing key file: %w", err)
			}

			fmt.Println("API key removed")

			return nil
		},
	}
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login [service]",
	Short: "Store an API key for a hosting service",
	Long: `Stores a bearer token for a hosting service domain. The token is read
from the terminal without echo, or from stdin when piped.

The service name must match the "service" field of the sites that will
use it, e.g.:

  pagelift login pages.example.net`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout [service]",
	Short: "Remove the stored API key for a hosting service",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogout,
}

var loginListCmd = &cobra.Command{
	Use:   "logins",
	Short: "List hosting services with stored API keys",
	RunE:  runLoginList,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(loginListCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if credentialsStore == nil {
		return errors.New("credentials store not configured")
	}

	service := args[0]
	token, err := readToken(cmd)
	if err != nil {
		return err
	}
	if token == "" {
		return errors.New("empty API key")
	}

	creds := domain.Credentials{
		Service:   service,
		Token:     token,
		CreatedAt: time.Now(),
	}
	if err := credentialsStore.Save(context.Background(), creds); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}

	cmd.Printf("API key stored for %s\n", service)
	return nil
}

// readToken reads the API key without echo when attached to a terminal,
// falling back to a plain line read when input is piped.
func readToken(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		cmd.Print("API key: ")
		raw, err := term.ReadPassword(fd)
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("reading API key: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading API key: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if credentialsStore == nil {
		return errors.New("credentials store not configured")
	}

	service := args[0]
	if err := credentialsStore.Delete(context.Background(), service); err != nil {
		return fmt.Errorf("removing credentials: %w", err)
	}

	cmd.Printf("Removed API key for %s\n", service)
	return nil
}

func runLoginList(cmd *cobra.Command, _ []string) error {
	if credentialsStore == nil {
		return errors.New("credentials store not configured")
	}

	creds, err := credentialsStore.List(context.Background())
	if err != nil {
		return fmt.Errorf("listing credentials: %w", err)
	}

	if len(creds) == 0 {
		cmd.Println("No stored API keys.")
		cmd.Println("Add one with: pagelift login <service>")
		return nil
	}

	cmd.Println("Stored API keys:")
	for i := range creds {
		cmd.Printf("  %s (added %s)\n", creds[i].Service, creds[i].CreatedAt.Format("2006-01-02"))
	}
	return nil
}

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tweetgrid/pkg/auth"
	"tweetgrid/pkg/ui"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored API token",
	Long: `Manage the stored search API token.

The token is stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - TWEETGRID_API_TOKEN environment variable (read-only fallback)

Never share your token or config files!`,
}

// loginCmd represents the auth login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the API token securely",
	Long: `Store the search API token in the system keychain or an encrypted file.

You will be prompted for the token; input is hidden as you type. Get the
token from your API provider dashboard.`,
	Example: `  # Interactive login
  tweetgrid auth login`,
	Args: cobra.NoArgs,
	Run:  runLogin,
}

// logoutCmd represents the auth logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token",
	Args:  cobra.NoArgs,
	Run:   runLogout,
}

// statusCmd represents the auth status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a token is stored",
	Long:  `Show whether an API token is stored and a masked preview of it.`,
	Args:  cobra.NoArgs,
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)
}

func runLogin(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize token store", err.Error())
		os.Exit(1)
	}

	if manager.Exists() {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("A token is already stored. Replace it? (y/N): ")
		input, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(input)), "y") {
			return
		}
	}

	fmt.Print("API token (input hidden): ")
	token, err := readSecret()
	if err != nil {
		ui.PrintError("Failed to read token", err.Error())
		os.Exit(1)
	}
	if token == "" {
		ui.PrintError("Token is required", "")
		os.Exit(1)
	}

	if err := manager.Store(token); err != nil {
		ui.PrintError("Failed to store token", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Token stored")
	fmt.Println("\nRun a collection with:")
	fmt.Println("  tweetgrid collect")
}

func runLogout(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize token store", err.Error())
		os.Exit(1)
	}

	if err := manager.Delete(); err != nil {
		ui.PrintError("Failed to remove token", err.Error())
		os.Exit(1)
	}
	ui.PrintSuccess("Token removed")
}

func runStatus(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize token store", err.Error())
		os.Exit(1)
	}

	token, err := manager.Retrieve()
	if err != nil {
		ui.PrintInfo("Token", "not stored")
		fmt.Println("\nStore one with:")
		fmt.Println("  tweetgrid auth login")
		return
	}

	ui.PrintInfo("Token", maskToken(token))
}

// maskToken shows only the edges of the token.
func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// readSecret reads a value from stdin without echoing
func readSecret() (string, error) {
	if term.IsTerminal(int(syscall.Stdin)) {
		secret, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err == nil {
			return strings.TrimSpace(string(secret)), nil
		}
	}

	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

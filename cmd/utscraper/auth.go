package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"utscraper/pkg/auth"
	"utscraper/pkg/config"
	"utscraper/pkg/ui"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored Untappd login",
	Long: `Manage the stored Untappd login.

The login is only used as a hint during the manual browser sign-in; it is
never submitted automatically. It can be stored in:
  - A plain credentials file (email on the first line, password on the second)
  - The system keychain (when available)
  - An encrypted file with PBKDF2 key derivation
  - Environment variables (UTSCRAPER_EMAIL and UTSCRAPER_PASSWORD)`,
}

// authLoginCmd represents the auth login command
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the Untappd login",
	Long: `Prompt for the Untappd email and password and store them in the first
available backend.`,
	Args: cobra.NoArgs,
	Run:  runAuthLogin,
}

// authRemoveCmd represents the auth remove command
var authRemoveCmd = &cobra.Command{
	Use:     "remove",
	Aliases: []string{"logout"},
	Short:   "Remove the stored login",
	Args:    cobra.NoArgs,
	Run:     runAuthRemove,
}

// authStatusCmd represents the auth status command
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored login with the password masked",
	Args:  cobra.NoArgs,
	Run:   runAuthStatus,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRemoveCmd)
	authCmd.AddCommand(authStatusCmd)
}

func newAuthManager() *auth.Manager {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	manager, err := auth.NewManager(cfg.Untappd.CredentialsFile)
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}
	return manager
}

func runAuthLogin(cmd *cobra.Command, args []string) {
	manager := newAuthManager()

	email, err := ui.ReadLine("Untappd email: ")
	if err != nil {
		ui.PrintError("Failed to read email", err.Error())
		os.Exit(1)
	}
	if email == "" || !strings.Contains(email, "@") {
		ui.PrintError("A valid email address is required")
		os.Exit(1)
	}

	password, err := ui.ReadPassword("Untappd password: ")
	if err != nil {
		ui.PrintError("Failed to read password", err.Error())
		os.Exit(1)
	}
	if password == "" {
		ui.PrintError("Password is required")
		os.Exit(1)
	}

	creds := &auth.Credentials{Email: email, Password: password}
	if err := manager.Store(creds); err != nil {
		ui.PrintError("Failed to store credentials", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Login stored: " + email)
	fmt.Println("\nStart a crawl with:")
	fmt.Println("  utscraper crawl <untappd_username>")
}

func runAuthRemove(cmd *cobra.Command, args []string) {
	manager := newAuthManager()

	if !manager.Exists() {
		ui.PrintWarning("No stored login found")
		return
	}

	confirm, err := ui.ReadLine("Remove the stored login? (y/N): ")
	if err != nil || !strings.HasPrefix(strings.ToLower(confirm), "y") {
		return
	}

	if err := manager.Delete(); err != nil {
		ui.PrintError("Failed to remove login", err.Error())
		os.Exit(1)
	}
	ui.PrintSuccess("Login removed")
}

func runAuthStatus(cmd *cobra.Command, args []string) {
	manager := newAuthManager()

	creds, err := manager.Retrieve()
	if err != nil {
		ui.PrintInfo("No stored login", "Use 'utscraper auth login' to store one")
		return
	}

	sanitized := auth.Sanitize(creds)
	ui.PrintHighlight("Stored Login")
	fmt.Printf("  Email:    %s\n", sanitized.Email)
	fmt.Printf("  Password: %s\n", sanitized.Password)
	if !sanitized.LastModified.IsZero() {
		fmt.Printf("  Modified: %s\n", sanitized.LastModified.Format("2006-01-02 15:04:05"))
	}
}

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/inkdex/inkdex/auth"
	"github.com/inkdex/inkdex/pkg/clierr"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// verificationResender is the optional transport capability for resending
// the verification email.
type verificationResender interface {
	ResendVerification(ctx context.Context, email string) error
}

// loginCmd creates a new cobra.Command for logging into the marketplace.
func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to Inkdex",
		Long:  "Log in to Inkdex using your email and password",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Please enter your Inkdex email and password.")
			email := promptForInput("Email: ")
			password := promptForPassword("Password: ")

			if err := validateCredentials(email, password); err != nil {
				cmd.PrintErrln("Error:", err.Error())
				return
			}

			user, err := session.Login(cmd.Context(), email, password)
			if err != nil {
				handleLoginError(cmd, email, err)
				return
			}
			cmd.Printf("Logged in as %s (%s).\n", user.Name, user.Role)
		},
	}

	return cmd
}

// handleLoginError prints a useful message for a failed login and offers to
// resend the verification email when that is the blocker.
func handleLoginError(cmd *cobra.Command, email string, err error) {
	var lerr *auth.LoginError
	if !errors.As(err, &lerr) {
		cmd.PrintErrln("Error: Failed to log in to Inkdex.")
		return
	}
	cmd.PrintErrln("Error:", lerr.Message)
	if !lerr.RequiresVerification {
		return
	}

	answer := promptForInput("Your email is not verified. Resend the verification email? [y/N] ")
	if !strings.EqualFold(answer, "y") {
		return
	}
	resender, ok := session.Transport.(verificationResender)
	if !ok {
		return
	}
	if err := resender.ResendVerification(cmd.Context(), email); err != nil {
		cmd.PrintErrln("Error: Could not resend the verification email.")
		return
	}
	cmd.Println("Verification email sent. Check your inbox.")
}

// promptForInput prompts the user for input and returns the trimmed string.
func promptForInput(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println("Error: Failed to read input.")
		os.Exit(1)
	}
	return strings.TrimSpace(input)
}

// promptForPassword prompts the user for a password securely and returns the trimmed string.
func promptForPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Println("Error: Failed to read password.")
		os.Exit(1)
	}
	fmt.Println() // Print a newline for better formatting
	return strings.TrimSpace(string(password))
}

// validateCredentials checks if the email and password are not empty.
func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return clierr.New(clierr.Validation, "Email and password cannot be empty", nil)
	}
	if !strings.Contains(email, "@") {
		return clierr.New(clierr.Validation, "That does not look like an email address", nil)
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/inkdex/inkdex/auth"
	"github.com/inkdex/inkdex/client"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// DefaultAPIURL is the production API endpoint.
const DefaultAPIURL = "https://api.inkdex.io"

var (
	session *auth.Session
	api     *client.Client
)

// apiBaseURL returns the API endpoint from the environment or the default.
func apiBaseURL() string {
	if u := os.Getenv("INKDEX_API_URL"); u != "" {
		return u
	}
	return DefaultAPIURL
}

// initSession wires the auth components and the API client together.
func initSession() {
	base := apiBaseURL()
	transport := auth.NewTransport(base)
	session = auth.NewSession(transport, cliNotifier{}, nil)
	api = client.New(base, session.Gate)
}

// cliNotifier prints the two session notices on stderr. Everything else in
// the auth machinery stays silent.
type cliNotifier struct{}

func (cliNotifier) SessionExpired() {
	fmt.Fprintln(os.Stderr, "Your session has expired. Please log in again.")
}

func (cliNotifier) AccountInvalid(string) {
	fmt.Fprintln(os.Stderr, "There is a problem with your account. Please log in again.")
}

// newTable creates a table writer with the appearance settings shared by all
// listing commands.
func newTable(headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)
	return table
}

// requireUser returns the authenticated user or prints a login hint.
func requireUser(cmd *cobra.Command) *auth.User {
	if session.Store.Status() != auth.StatusAuthenticated {
		cmd.PrintErrln("Error: You are not logged in. Run `inkdex login` first.")
		return nil
	}
	return session.Store.User()
}

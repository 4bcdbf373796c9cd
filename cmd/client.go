/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/condoease/apiserver/config"
	"github.com/condoease/apiserver/internal/client"
	"github.com/spf13/cobra"
)

// clientCmd groups the CLI client subcommands.
var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Interact with a CondoEase server",
}

var clientLoginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Sign in and persist the session",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		api, _ := mustClient()
		user, announcements, err := api.Login(cmd.Context(), args[0], args[1])
		if err != nil {
			if errors.Is(err, client.ErrUnauthorized) {
				fmt.Fprintln(os.Stderr, "Invalid email or password")
				os.Exit(1)
			}
			fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Signed in as %s %s <%s>\n", user.FirstName, user.LastName, user.Email)
		if len(announcements) > 0 {
			fmt.Printf("%d announcement(s) on your board\n", len(announcements))
		}
	},
}

var clientLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	Run: func(cmd *cobra.Command, args []string) {
		api, _ := mustClient()
		if err := api.Logout(); err != nil {
			fmt.Fprintf(os.Stderr, "logout failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Signed out")
	},
}

var clientWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Run: func(cmd *cobra.Command, args []string) {
		api, session := mustClient()

		state := session.State()
		if client.Decide(state) != client.DecisionAllow {
			fmt.Fprintln(os.Stderr, "Not signed in")
			os.Exit(1)
		}

		user, err := api.Me(cmd.Context())
		if err != nil {
			if errors.Is(err, client.ErrUnauthorized) {
				fmt.Fprintln(os.Stderr, "Session expired, please sign in again")
				os.Exit(1)
			}
			fmt.Fprintf(os.Stderr, "whoami failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s %s <%s> (%s)\n", user.FirstName, user.LastName, user.Email, user.Role)
	},
}

func mustClient() (*client.API, *client.Store) {
	cfg := config.LoadConfig()
	session, err := client.NewStore(cfg.Client.SessionFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open session store: %v\n", err)
		os.Exit(1)
	}
	if _, err := session.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load session: %v\n", err)
		os.Exit(1)
	}
	return client.NewAPI(cfg.Client.APIBaseURL, session), session
}

func init() {
	clientCmd.AddCommand(clientLoginCmd)
	clientCmd.AddCommand(clientLogoutCmd)
	clientCmd.AddCommand(clientWhoamiCmd)
	rootCmd.AddCommand(clientCmd)
}

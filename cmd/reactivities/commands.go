package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reactivities/reactivities-go/client"
)

var (
	apiURL    string
	tokenPath string

	// stores is built once in PersistentPreRunE and shared by every command.
	stores *client.RootStore

	rootCmd = &cobra.Command{
		Use:   "reactivities",
		Short: "A cli for the Reactivities social events API",
		Long: `Reactivities is a client for the Reactivities API: browse and host
social events, manage attendance and discuss activities from the terminal.

The session token is persisted under the user config directory, so a login
survives between invocations.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupStores,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "",
		"Base URL of the Reactivities API (default $REACTIVITIES_API_URL or http://localhost:5000/api)")
	rootCmd.PersistentFlags().StringVar(&tokenPath, "token-file", "",
		"Path of the persisted session token (default <user config dir>/reactivities/token)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(activitiesCmd)
	rootCmd.AddCommand(commentsCmd)

	activitiesCmd.AddCommand(activitiesListCmd)
	activitiesCmd.AddCommand(activitiesGetCmd)
	activitiesCmd.AddCommand(activitiesCreateCmd)
	activitiesCmd.AddCommand(activitiesEditCmd)
	activitiesCmd.AddCommand(activitiesDeleteCmd)
	activitiesCmd.AddCommand(activitiesAttendCmd)
	activitiesCmd.AddCommand(activitiesCancelCmd)

	commentsCmd.AddCommand(commentsListCmd)
	commentsCmd.AddCommand(commentsAddCmd)
	commentsCmd.AddCommand(commentsDeleteCmd)
}

func setupStores(cmd *cobra.Command, args []string) error {
	storage, err := client.NewFileTokenStorage(tokenPath)
	if err != nil {
		return fmt.Errorf("resolving token storage: %w", err)
	}

	stores = client.NewRootStore(client.Config{
		BaseURL:      apiURL,
		TokenStorage: storage,
		Navigator:    client.NavigatorFunc(func(path string) {}),
		Notifier: client.NotifierFunc(func(message string) {
			fmt.Fprintln(os.Stderr, render(styles.Warning, "⚠ "+message))
		}),
	})
	return nil
}

// requireLogin loads the stored session and fails with a hint when there is
// none or the token has expired.
func requireLogin(cmd *cobra.Command) error {
	if stores.CommonStore.Token() == "" {
		return fmt.Errorf("not logged in, run %q first", "reactivities login")
	}
	if err := stores.UserStore.LoadUser(cmd.Context()); err != nil {
		return fmt.Errorf("session expired, run %q again", "reactivities login")
	}
	return nil
}

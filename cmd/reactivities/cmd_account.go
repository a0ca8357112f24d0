package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/reactivities/reactivities-go/types"
)

var (
	loginEmail    string
	loginPassword string

	registerEmail       string
	registerPassword    string
	registerUsername    string
	registerDisplayName string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session token",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account and log in",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the persisted session token",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently logged-in user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (prompted when omitted)")

	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Account email")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Account password (prompted when omitted)")
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Unique username")
	registerCmd.Flags().StringVar(&registerDisplayName, "display-name", "", "Display name shown to other users")
}

// promptFor reads a single line from stdin, printing the prompt only when
// stdin is an interactive terminal.
func promptFor(label string) (string, error) {
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		fmt.Printf("%s: ", label)
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	var err error
	if loginEmail == "" {
		if loginEmail, err = promptFor("Email"); err != nil {
			return err
		}
	}
	if loginPassword == "" {
		if loginPassword, err = promptFor("Password"); err != nil {
			return err
		}
	}

	err = stores.UserStore.Login(cmd.Context(), types.UserFormValues{
		Email:    loginEmail,
		Password: loginPassword,
	})
	if err != nil {
		return err
	}

	user := stores.UserStore.CurrentUser()
	fmt.Println(renderSuccess("Logged in as " + user.DisplayName))
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	var err error
	if registerEmail == "" {
		if registerEmail, err = promptFor("Email"); err != nil {
			return err
		}
	}
	if registerUsername == "" {
		if registerUsername, err = promptFor("Username"); err != nil {
			return err
		}
	}
	if registerDisplayName == "" {
		registerDisplayName = registerUsername
	}
	if registerPassword == "" {
		if registerPassword, err = promptFor("Password"); err != nil {
			return err
		}
	}

	err = stores.UserStore.Register(cmd.Context(), types.UserFormValues{
		Email:       registerEmail,
		Password:    registerPassword,
		Username:    registerUsername,
		DisplayName: registerDisplayName,
	})
	if err != nil {
		return err
	}

	user := stores.UserStore.CurrentUser()
	fmt.Println(renderSuccess("Registered and logged in as " + user.DisplayName))
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	stores.UserStore.Logout()
	fmt.Println(renderSuccess("Logged out"))
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	if err := requireLogin(cmd); err != nil {
		return err
	}

	user := stores.UserStore.CurrentUser()
	fmt.Println(render(styles.Header, user.DisplayName))
	fmt.Println(render(styles.Muted, "@"+user.Username))
	return nil
}

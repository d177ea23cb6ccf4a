package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"edu_portal/internal/portal"

	"github.com/spf13/cobra"
)

var (
	authEmail    string
	authPassword string
	authConfirm  string
	authRole     string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := secret(cmd, authPassword, "Password: ")
		if err != nil {
			return err
		}
		confirm := authConfirm
		if confirm == "" {
			if confirm, err = secret(cmd, "", "Confirm password: "); err != nil {
				return err
			}
		}
		auth := portal.NewAuth(current.api, current.sessions, current.logger)
		path, err := auth.Signup(commandContext(cmd), portal.SignupForm{
			Email: authEmail, Password: password, Confirm: confirm, Role: authRole,
		})
		if err != nil {
			return failure(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Account created. Signed in as %s.\n", authRole)
		return showDashboard(cmd, path)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as a student or teacher",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := secret(cmd, authPassword, "Password: ")
		if err != nil {
			return err
		}
		auth := portal.NewAuth(current.api, current.sessions, current.logger)
		path, err := auth.Login(commandContext(cmd), portal.LoginForm{Email: authEmail, Password: password, Role: authRole})
		if err != nil {
			return failure(err)
		}
		return showDashboard(cmd, path)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := portal.NewAuth(current.api, current.sessions, current.logger).Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, ok := current.sessions.Current()
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (home: %s)\n", s.Role,
			portal.NewAuth(current.api, current.sessions, current.logger).Home())
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{signupCmd, loginCmd} {
		c.Flags().StringVarP(&authEmail, "email", "e", "", "account email")
		c.Flags().StringVarP(&authPassword, "password", "p", "", "password (prompted when empty)")
		c.Flags().StringVarP(&authRole, "role", "r", "student", "student or teacher")
	}
	signupCmd.Flags().StringVar(&authConfirm, "confirm", "", "password confirmation (prompted when empty)")

	rootCmd.AddCommand(signupCmd, loginCmd, logoutCmd, whoamiCmd)
}

// secret returns value or reads one line from stdin after printing prompt
func secret(cmd *cobra.Command, value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

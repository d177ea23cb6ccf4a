package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"edu_portal/internal/directory"
	"edu_portal/internal/model"

	"github.com/spf13/cobra"
)

var (
	usersQuery  string
	deleteYes   bool
	updateEmail string
	updateRole  string
	updateSet   []string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Browse and manage the user directory",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users, optionally filtered by email or name",
	RunE: func(cmd *cobra.Command, args []string) error {
		view := directory.NewView(commandContext(cmd), current.api, current.logger)
		defer view.Close()
		if err := view.Load(commandContext(cmd)); err != nil {
			return failure(err)
		}
		printUsers(cmd.OutOrStdout(), view.Visible(usersQuery))
		return nil
	},
}

var usersShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := current.api.GetUser(commandContext(cmd), args[0])
		if err != nil {
			return failure(err)
		}
		printUser(cmd.OutOrStdout(), u)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user after confirmation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		view := directory.NewView(ctx, current.api, current.logger)
		defer view.Close()
		if err := view.Load(ctx); err != nil {
			return failure(err)
		}
		deleted, err := view.Delete(ctx, args[0], func(u model.User) bool {
			return deleteYes || confirm(cmd, fmt.Sprintf("Delete %s?", u.Email))
		})
		if err != nil {
			return failure(err)
		}
		if !deleted {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted. %d users remain.\n", len(view.Users()))
		return nil
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a user's email, role and profile",
	Long: `Loads the user, applies the flags and sends the full record back.
Switching --role clears the profile fields of the previous role; use --set
to fill the new ones, e.g. --set name=Ann --set grade=10 --set courses=math,art.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		view := directory.NewView(ctx, current.api, current.logger)
		defer view.Close()

		form, err := view.Edit(ctx, args[0])
		if err != nil {
			return failure(err)
		}
		if updateEmail != "" {
			form.Email = updateEmail
		}
		if updateRole != "" {
			role, err := model.ParseRole(updateRole)
			if err != nil {
				return err
			}
			if err := form.SetRole(role); err != nil {
				return err
			}
		}
		for _, kv := range updateSet {
			name, value, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("--set expects field=value, got %q", kv)
			}
			if err := form.SetField(strings.TrimSpace(name), value); err != nil {
				return err
			}
		}

		u, err := view.Update(ctx, args[0], form)
		if err != nil {
			return failure(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Updated.")
		printUser(cmd.OutOrStdout(), u)
		return nil
	},
}

func init() {
	usersListCmd.Flags().StringVarP(&usersQuery, "query", "q", "", "case-insensitive match on email or name")
	usersDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
	usersUpdateCmd.Flags().StringVar(&updateEmail, "email", "", "new email")
	usersUpdateCmd.Flags().StringVar(&updateRole, "role", "", "new role (student or teacher)")
	usersUpdateCmd.Flags().StringArrayVar(&updateSet, "set", nil, "profile field as field=value (repeatable)")

	usersCmd.AddCommand(usersListCmd, usersShowCmd, usersDeleteCmd, usersUpdateCmd)
	rootCmd.AddCommand(usersCmd)
}

func printUsers(w io.Writer, users []model.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tROLE\tNAME")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Role, model.ProfileName(u.Profile))
	}
	tw.Flush()
}

func printUser(w io.Writer, u model.User) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", u.ID)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Role:\t%s\n", u.Role)
	switch p := u.Profile.(type) {
	case model.TeacherProfile:
		fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
		fmt.Fprintf(tw, "Subject:\t%s\n", p.Subject)
		fmt.Fprintf(tw, "Experience:\t%d years\n", p.Experience)
	case model.StudentProfile:
		fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
		fmt.Fprintf(tw, "Grade:\t%s\n", p.Grade)
		fmt.Fprintf(tw, "Courses:\t%s\n", strings.Join(p.Courses, ", "))
	}
	tw.Flush()
}

func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N] ", question)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

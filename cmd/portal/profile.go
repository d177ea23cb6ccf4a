package main

import (
	"fmt"
	"strings"

	"edu_portal/internal/profile"

	"github.com/spf13/cobra"
)

var profileSet []string

var profileCmd = &cobra.Command{
	Use:   "profile <id>",
	Short: "Show a user's profile, or edit it with --set field=value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		user, err := current.api.GetUser(ctx, args[0])
		if err != nil {
			return failure(err)
		}
		if len(profileSet) == 0 {
			printUser(cmd.OutOrStdout(), user)
			return nil
		}

		editor := profile.NewEditor(user.Profile, profile.SaveVia(current.api, user))
		editor.Edit()
		for _, kv := range profileSet {
			name, value, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("--set expects field=value, got %q", kv)
			}
			if err := editor.Set(strings.TrimSpace(name), value); err != nil {
				return failure(err)
			}
		}
		if err := editor.Save(ctx); err != nil {
			return failure(err)
		}
		user.Profile = editor.Profile()
		fmt.Fprintln(cmd.OutOrStdout(), "Profile saved.")
		printUser(cmd.OutOrStdout(), user)
		return nil
	},
}

func init() {
	profileCmd.Flags().StringArrayVar(&profileSet, "set", nil, "profile field as field=value (repeatable)")
	rootCmd.AddCommand(profileCmd)
}

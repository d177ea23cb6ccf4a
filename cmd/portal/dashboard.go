package main

import (
	"fmt"
	"io"

	"edu_portal/internal/dashboard"
	"edu_portal/internal/model"
	"edu_portal/internal/portal"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the dashboard of the logged-in role",
	RunE: func(cmd *cobra.Command, args []string) error {
		home := portal.NewAuth(current.api, current.sessions, current.logger).Home()
		return showDashboard(cmd, home)
	},
}

var landingCmd = &cobra.Command{
	Use:   "landing",
	Short: "Show the public start page",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLanding(cmd)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd, landingCmd)
}

func runLanding(cmd *cobra.Command) error {
	l := dashboard.LandingPage()
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s\n%s\n\n", l.Headline, l.Tagline)
	printCards(w, l.Features)
	fmt.Fprintln(w, "\nCourse categories")
	printCards(w, l.Categories)
	fmt.Fprintln(w, "\nGet started: portal signup | portal login")
	return nil
}

// showDashboard renders the screen behind a navigation path
func showDashboard(cmd *cobra.Command, path string) error {
	var role model.Role
	switch path {
	case portal.PathStudentDashboard:
		role = model.RoleStudent
	case portal.PathTeacherDashboard:
		role = model.RoleTeacher
	default:
		return runLanding(cmd)
	}
	d, err := dashboard.ForRole(role)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s\n\n", d.Heading)
	printCards(w, d.Stats)
	fmt.Fprintln(w, upcomingHeading(role))
	printCards(w, d.Upcoming)
	return nil
}

func printCards(w io.Writer, cards []dashboard.Card) {
	for _, c := range cards {
		fmt.Fprintf(w, "  %-24s %s\n", c.Title, c.Detail)
	}
}

func upcomingHeading(role model.Role) string {
	if role == model.RoleTeacher {
		return "\nRecent activity"
	}
	return "\nUpcoming assignments"
}

// Package dashboard holds the static content shown on the landing page and
// the per-role dashboards.
package dashboard

import (
	"fmt"

	"edu_portal/internal/model"
)

// Card is one tile of a dashboard
type Card struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Dashboard is the sample content for one role
type Dashboard struct {
	Role     model.Role `json:"role"`
	Heading  string     `json:"heading"`
	Stats    []Card     `json:"stats"`
	Upcoming []Card     `json:"upcoming"`
}

// Landing is the marketing copy of the public start page
type Landing struct {
	Headline   string   `json:"headline"`
	Tagline    string   `json:"tagline"`
	Features   []Card   `json:"features"`
	Categories []Card   `json:"categories"`
	Actions    []string `json:"actions"`
}

// ForRole returns the dashboard of role
func ForRole(role model.Role) (Dashboard, error) {
	switch role {
	case model.RoleStudent:
		return Dashboard{
			Role:    role,
			Heading: "Student dashboard",
			Stats: []Card{
				{Title: "Web Development Masterclass", Detail: "Prof. Emily Chen, 75% done, next class tomorrow at 10:00 AM"},
				{Title: "Python for Beginners", Detail: "Dr. Michael Rodriguez, 60% done, next class Thursday at 2:00 PM"},
				{Title: "Advanced JavaScript Techniques", Detail: "Prof. Sarah Kim, 45% done, next class Friday at 11:30 AM"},
			},
			Upcoming: []Card{
				{Title: "Web Dev Project Submission", Detail: "Due in 3 days (pending)"},
				{Title: "Python Programming Quiz", Detail: "Due in 5 days (not started)"},
				{Title: "JavaScript Coding Challenge", Detail: "Due in 7 days (in progress)"},
			},
		}, nil
	case model.RoleTeacher:
		return Dashboard{
			Role:    role,
			Heading: "Teacher dashboard",
			Stats: []Card{
				{Title: "Web Development Masterclass", Detail: "342 students, 75% complete, updated 2 days ago"},
				{Title: "Python for Beginners", Detail: "201 students, 60% complete, updated 1 week ago"},
				{Title: "Advanced JavaScript Techniques", Detail: "156 students, 45% complete, updated 3 days ago"},
			},
			Upcoming: []Card{
				{Title: "25 New Enrollments", Detail: "Across your courses this week"},
				{Title: "Assignment Submissions", Detail: "42 assignments reviewed"},
				{Title: "New Discussion", Detail: "Student question in Web Dev course"},
			},
		}, nil
	}
	return Dashboard{}, fmt.Errorf("no dashboard for role %q", role)
}

// LandingPage returns the public start page content
func LandingPage() Landing {
	return Landing{
		Headline: "Transform Your Skills. Learn Anywhere, Anytime.",
		Tagline:  "Discover a world of knowledge with expert-led courses, interactive learning, and personalized educational experiences.",
		Features: []Card{
			{Title: "Comprehensive Courses", Detail: "Access a wide range of expert-curated courses across multiple disciplines."},
			{Title: "Global Learning", Detail: "Connect with top instructors and students from around the world."},
			{Title: "Interactive Content", Detail: "Engage with high-quality video lectures, quizzes, and hands-on projects."},
		},
		Categories: []Card{
			{Title: "Technology", Detail: "45+"},
			{Title: "Business", Detail: "32+"},
			{Title: "Design", Detail: "28+"},
			{Title: "Data Science", Detail: "22+"},
		},
		Actions: []string{"/signup", "/login", "/userlist"},
	}
}

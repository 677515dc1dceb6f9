package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/fitcoach/internal/models"
	"github.com/julianstephens/fitcoach/internal/session"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch {
	case m.weightForm != nil:
		content = docStyle.Render(m.form.View())
	case m.session.View == session.ViewLogin:
		content = m.viewLogin()
	case m.session.View == session.ViewProfile:
		content = m.viewProfile()
	case m.session.View == session.ViewDashboard:
		content = m.viewDashboard()
	case m.session.View == session.ViewMealPlan:
		content = docStyle.Render(m.planHeader("Meal Plan") + m.meals.View())
	case m.session.View == session.ViewWorkoutPlan:
		content = docStyle.Render(m.planHeader("Workout Plan") + m.workout.View())
	case m.session.View == session.ViewProgress:
		content = m.viewProgress()
	}

	parts := []string{}
	if m.session.User != nil {
		parts = append(parts, m.viewTabs())
	}
	parts = append(parts, content, m.viewStatus(), m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var out []string
	for _, t := range tabs {
		if m.session.View == t.view {
			out = append(out, activeTabStyle.Render(t.title))
		} else {
			out = append(out, inactiveTabStyle.Render(t.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func (m Model) viewStatus() string {
	switch {
	case m.session.Loading:
		return m.spinner.View() + " Generating your plan..."
	case m.errMsg != "":
		return dangerStyle.Render(m.errMsg)
	case m.notice != "":
		return noticeStyle.Render(m.notice)
	}
	return ""
}

func (m Model) viewLogin() string {
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("FitCoach"),
		m.form.View(),
	))
}

func (m Model) viewProfile() string {
	title := "Edit profile"
	if m.session.User == nil && m.session.Pending != nil {
		title = "Create your profile for " + m.session.Pending.Email
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		m.form.View(),
	))
}

func (m Model) planHeader(title string) string {
	return titleStyle.Render(title) + "\n"
}

func (m Model) viewDashboard() string {
	u := m.session.User
	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome back, "+u.Name) + "\n")

	stats := []struct{ label, value string }{
		{"Current weight", fmt.Sprintf("%.1f kg", u.Weight)},
		{"BMI", fmt.Sprintf("%.1f (%s)", u.BMI(), BMICategory(u.BMI()))},
		{"Change", fmt.Sprintf("%+.1f kg since %s", u.WeightChange(), firstLogDate(*u))},
		{"Goal", string(u.FitnessGoal)},
		{"Activity", string(u.ActivityLevel)},
		{"Diet", string(u.FoodPreference)},
	}
	if p := m.session.Plan; p != nil {
		stats = append(stats, struct{ label, value string }{
			"Daily calories", fmt.Sprintf("%.0f kcal", p.DietPlan.DailyMacros.TotalCalories),
		})
	}

	var rows []string
	for _, s := range stats {
		rows = append(rows, labelStyle.Render(s.label)+valueStyle.Render(s.value))
	}
	b.WriteString(cardStyle.Render(strings.Join(rows, "\n")) + "\n\n")

	if p := m.session.Plan; p != nil {
		b.WriteString(p.Summary)
	} else {
		b.WriteString(warningStyle.Render("No plan yet. Press 'g' to generate your diet and workout plan."))
	}
	return docStyle.Render(b.String())
}

func (m Model) viewProgress() string {
	return docStyle.Render(m.weights.View())
}

// BMICategory names the standard adult BMI band.
func BMICategory(bmi float64) string {
	switch {
	case bmi <= 0:
		return "unknown"
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

func firstLogDate(u models.UserProfile) string {
	if len(u.WeightLogs) == 0 {
		return "start"
	}
	return u.WeightLogs[0].Date
}

package plan

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/fitcoach/internal/models"
)

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Kind selects which half of a plan the model renders.
type Kind int

const (
	Meals Kind = iota
	Workout
)

type Model struct {
	viewport viewport.Model
	kind     Kind
	Plan     *models.GeneratedPlan
	width    int
	height   int
}

func New(kind Kind, width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		kind:     kind,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Plan == nil {
		return "No plan yet. Press 'g' to generate one."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetPlan replaces the rendered plan; nil clears it.
func (m *Model) SetPlan(plan *models.GeneratedPlan) {
	m.Plan = plan
	m.viewport.GotoTop()
	m.Render()
}

func (m *Model) Render() {
	if m.Plan == nil {
		m.viewport.SetContent("")
		return
	}
	if m.kind == Workout {
		m.viewport.SetContent(RenderWorkout(*m.Plan))
		return
	}
	m.viewport.SetContent(RenderMeals(*m.Plan))
}

// RenderMeals formats the diet half of a plan.
func RenderMeals(p models.GeneratedPlan) string {
	var b strings.Builder
	macros := p.DietPlan.DailyMacros

	b.WriteString(headingStyle.Render("Daily targets") + "\n")
	fmt.Fprintf(&b, "%.0f kcal  |  protein %.0fg  carbs %.0fg  fats %.0fg\n\n",
		macros.TotalCalories, macros.Protein, macros.Carbs, macros.Fats)

	meals := []struct {
		name  string
		items []models.MealItem
	}{
		{"Breakfast", p.DietPlan.SampleDay.Breakfast},
		{"Lunch", p.DietPlan.SampleDay.Lunch},
		{"Dinner", p.DietPlan.SampleDay.Dinner},
		{"Snacks", p.DietPlan.SampleDay.Snacks},
	}
	for _, meal := range meals {
		if len(meal.items) == 0 {
			continue
		}
		b.WriteString(headingStyle.Render(meal.name) + "\n")
		for _, item := range meal.items {
			b.WriteString("  " + itemStyle.Render(item.Name))
			b.WriteString(detailStyle.Render(fmt.Sprintf("  %.0f kcal · P %.0fg C %.0fg F %.0fg",
				item.Calories, item.Protein, item.Carbs, item.Fats)) + "\n")
			if item.Description != "" {
				b.WriteString("    " + noteStyle.Render(item.Description) + "\n")
			}
		}
		b.WriteString("\n")
	}

	if p.DietPlan.HydrationTips != "" {
		b.WriteString(headingStyle.Render("Hydration") + "\n")
		b.WriteString(p.DietPlan.HydrationTips + "\n")
	}
	return b.String()
}

// RenderWorkout formats the training half of a plan.
func RenderWorkout(p models.GeneratedPlan) string {
	var b strings.Builder

	if p.WorkoutPlan.Frequency != "" {
		b.WriteString(detailStyle.Render("Frequency: "+p.WorkoutPlan.Frequency) + "\n\n")
	}
	for _, day := range p.WorkoutPlan.Routine {
		b.WriteString(headingStyle.Render(day.DayName) + "\n")
		for _, ex := range day.Exercises {
			b.WriteString("  " + itemStyle.Render(ex.Name))
			b.WriteString(detailStyle.Render(fmt.Sprintf("  %s x %s", ex.Sets, ex.Reps)) + "\n")
			if ex.Notes != "" {
				b.WriteString("    " + noteStyle.Render(ex.Notes) + "\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

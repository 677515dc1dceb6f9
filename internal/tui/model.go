package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/fitcoach/internal/session"
	"github.com/julianstephens/fitcoach/internal/tui/components/plan"
	"github.com/julianstephens/fitcoach/internal/tui/components/weightlog"
)

// tabs are the views reachable with tab/shift+tab once logged in.
var tabs = []struct {
	view  session.View
	title string
}{
	{session.ViewDashboard, "Dashboard"},
	{session.ViewMealPlan, "Meal Plan"},
	{session.ViewWorkoutPlan, "Workout"},
	{session.ViewProgress, "Progress"},
	{session.ViewProfile, "Profile"},
}

type Model struct {
	ctx         context.Context
	mgr         *session.Manager
	session     session.State
	keys        KeyMap
	help        help.Model
	spinner     spinner.Model
	meals       plan.Model
	workout     plan.Model
	weights     weightlog.Model
	form        *huh.Form
	loginForm   *LoginFormModel
	profileForm *ProfileFormModel
	weightForm  *WeightFormModel // non-nil while today's weight is being entered
	notice      string
	errMsg      string
	quitting    bool
	width       int
	height      int
}

// NewModel restores the last session from the store.
func NewModel(ctx context.Context, mgr *session.Manager) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = noticeStyle

	m := Model{
		ctx:     ctx,
		mgr:     mgr,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		meals:   plan.New(plan.Meals, 0, 0),
		workout: plan.New(plan.Workout, 0, 0),
		weights: weightlog.New(nil, 0, 0),
	}
	m.setSession(mgr.Restore())
	return m
}

// Session is the current in-memory session.
func (m Model) Session() session.State {
	return m.session
}

func (m Model) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return nil
}

// setSession adopts st, refreshes the components from it and prepares the
// form its view needs.
func (m *Model) setSession(st session.State) tea.Cmd {
	m.session = st
	m.weightForm = nil
	m.form = nil

	m.meals.SetPlan(st.Plan)
	m.workout.SetPlan(st.Plan)
	var logsCmd tea.Cmd
	if st.User != nil {
		logsCmd = m.weights.SetLogs(st.User.WeightLogs)
	} else {
		logsCmd = m.weights.SetLogs(nil)
	}

	switch st.View {
	case session.ViewLogin:
		email := ""
		if m.loginForm != nil {
			email = m.loginForm.Email
		}
		m.loginForm = &LoginFormModel{Email: email}
		m.form = NewLoginForm(m.loginForm)
	case session.ViewProfile:
		m.profileForm = NewProfileFormModel(st.User)
		m.form = NewProfileForm(m.profileForm)
	}

	if m.form != nil {
		return tea.Batch(logsCmd, m.form.Init())
	}
	return logsCmd
}

func (m *Model) resize() {
	h := m.height - 6
	if h < 0 {
		h = 0
	}
	m.meals.SetSize(m.width-4, h)
	m.workout.SetSize(m.width-4, h)
	m.weights.SetSize(m.width-4, h)
}

func (m Model) ShortHelp() []key.Binding {
	if m.form != nil {
		return []key.Binding{m.keys.Cancel}
	}
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.session.View {
	case session.ViewDashboard:
		keys = append(keys, m.keys.Generate, m.keys.Edit)
	case session.ViewMealPlan, session.ViewWorkoutPlan:
		keys = append(keys, m.keys.Generate)
	case session.ViewProgress:
		keys = append(keys, m.keys.LogWeight)
	}
	return append(keys, m.keys.Logout)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Logout}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}
	actions := []key.Binding{m.keys.Generate, m.keys.Edit, m.keys.LogWeight}
	return [][]key.Binding{global, navigation, actions}
}

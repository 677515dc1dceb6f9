package tui

import (
	"context"
	stderrors "errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/fitcoach/internal/errors"
	"github.com/julianstephens/fitcoach/internal/models"
	"github.com/julianstephens/fitcoach/internal/plancache"
	"github.com/julianstephens/fitcoach/internal/session"
)

// planGeneratedMsg carries the outcome of a background generation back to
// the model. userID is the user the generation was started for.
type planGeneratedMsg struct {
	userID string
	plan   *models.GeneratedPlan
	err    error
}

func generatePlan(ctx context.Context, plans *plancache.Cache, user models.UserProfile) tea.Cmd {
	return func() tea.Msg {
		p, err := plans.Generate(ctx, user)
		msg := planGeneratedMsg{userID: user.ID, err: err}
		// an uncached plan is still shown
		if err == nil || stderrors.Is(err, errors.ErrIO) {
			msg.plan = &p
		}
		return msg
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()

	case planGeneratedMsg:
		return m.finishGeneration(msg)

	case spinner.TickMsg:
		if !m.session.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			return m.navigate(m.adjacentTab(1))
		case key.Matches(msg, m.keys.ShiftTab):
			return m.navigate(m.adjacentTab(-1))
		case key.Matches(msg, m.keys.Edit):
			return m.navigate(session.ViewProfile)
		case key.Matches(msg, m.keys.Logout):
			st, err := m.mgr.Logout(m.session)
			cmd := m.setSession(st)
			m.report(err, "Logged out.")
			return m, cmd
		case key.Matches(msg, m.keys.Generate) && m.session.View != session.ViewProgress:
			return m.startGeneration()
		case key.Matches(msg, m.keys.LogWeight) && m.session.View == session.ViewProgress:
			m.weightForm = &WeightFormModel{}
			m.form = NewWeightForm(m.weightForm)
			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	switch m.session.View {
	case session.ViewMealPlan:
		m.meals, cmd = m.meals.Update(msg)
	case session.ViewWorkoutPlan:
		m.workout, cmd = m.workout.Update(msg)
	case session.ViewProgress:
		m.weights, cmd = m.weights.Update(msg)
	}
	return m, cmd
}

func (m Model) adjacentTab(step int) session.View {
	for i, t := range tabs {
		if t.view == m.session.View {
			return tabs[(i+step+len(tabs))%len(tabs)].view
		}
	}
	return session.ViewDashboard
}

func (m Model) navigate(v session.View) (tea.Model, tea.Cmd) {
	m.notice, m.errMsg = "", ""
	cmd := m.setSession(m.session.Navigate(v))
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case msg.Type == tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			return m.cancelForm()
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		next, submitCmd := m.submitForm()
		return next, tea.Batch(cmd, submitCmd)
	case huh.StateAborted:
		return m.cancelForm()
	}
	return m, cmd
}

func (m Model) cancelForm() (tea.Model, tea.Cmd) {
	switch {
	case m.weightForm != nil:
		m.weightForm = nil
		m.form = nil
		return m, nil
	case m.session.View == session.ViewProfile && m.session.User == nil:
		// abandoning a registration drops the draft; nothing was stored
		cmd := m.setSession(session.LoggedOut())
		return m, cmd
	case m.session.View == session.ViewProfile:
		return m.navigate(session.ViewDashboard)
	}
	cmd := m.setSession(m.session)
	return m, cmd
}

func (m Model) submitForm() (Model, tea.Cmd) {
	switch {
	case m.weightForm != nil:
		return m.submitWeight()
	case m.session.View == session.ViewLogin:
		return m.submitLogin()
	case m.session.View == session.ViewProfile:
		return m.submitProfile()
	}
	return m, nil
}

func (m Model) submitLogin() (Model, tea.Cmd) {
	fm := *m.loginForm

	var st session.State
	var err error
	if fm.Register {
		st, err = m.mgr.RegisterStart(m.session, fm.Email, fm.Password)
	} else {
		st, err = m.mgr.Login(m.session, fm.Email, fm.Password)
	}

	cmd := m.setSession(st)
	if st.View == session.ViewProfile && err == nil {
		m.notice = "Tell us about yourself to finish creating your account."
		m.errMsg = ""
		return m, cmd
	}
	m.report(err, "")
	return m, cmd
}

func (m Model) submitProfile() (Model, tea.Cmd) {
	in, err := m.profileForm.Input()
	st := m.session
	if err == nil {
		st, err = m.mgr.SubmitProfile(m.session, in)
	}

	if err != nil && st.View == session.ViewProfile {
		// keep what was typed so it can be corrected
		m.session = st
		m.form = NewProfileForm(m.profileForm)
		m.report(err, "")
		return m, m.form.Init()
	}

	cmd := m.setSession(st)
	m.report(err, "Profile saved.")
	return m, cmd
}

func (m Model) submitWeight() (Model, tea.Cmd) {
	w, err := parseNumber(m.weightForm.Weight)
	st := m.session
	if err == nil {
		st, err = m.mgr.LogWeight(m.session, w)
	} else {
		err = errors.ErrInvalidWeight
	}
	cmd := m.setSession(st)
	m.report(err, "Weight logged.")
	return m, cmd
}

func (m Model) startGeneration() (tea.Model, tea.Cmd) {
	st, err := m.mgr.BeginGeneration(m.session)
	if err != nil {
		m.report(err, "")
		return m, nil
	}
	m.session = st
	m.notice, m.errMsg = "", ""
	return m, tea.Batch(m.spinner.Tick, generatePlan(m.ctx, m.mgr.Plans(), *st.User))
}

func (m Model) finishGeneration(msg planGeneratedMsg) (tea.Model, tea.Cmd) {
	st, err := m.mgr.FinishGeneration(m.session, msg.userID, msg.plan, msg.err)
	if st.User == nil || st.User.ID != msg.userID {
		return m, nil
	}
	m.session = st
	m.meals.SetPlan(st.Plan)
	m.workout.SetPlan(st.Plan)
	m.report(err, "Your new plan is ready.")
	return m, nil
}

// report shows err to the user, or ok when there is no error.
func (m *Model) report(err error, ok string) {
	if err != nil {
		m.errMsg = errors.UserMessage(err)
		m.notice = ""
		return
	}
	m.errMsg = ""
	m.notice = ok
}

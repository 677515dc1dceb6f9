package weightlog

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/fitcoach/internal/models"
)

type Item struct {
	Log   models.WeightLog
	Delta float64 // change from the previous entry, 0 for the first
	First bool
}

func (i Item) Title() string {
	return fmt.Sprintf("%s  %.1f kg", i.Log.Date, i.Log.Weight)
}

func (i Item) Description() string {
	if i.First {
		return "starting weight"
	}
	return fmt.Sprintf("%+.1f kg", i.Delta)
}

func (i Item) FilterValue() string { return i.Log.Date }

type Model struct {
	list list.Model
}

func New(logs []models.WeightLog, width, height int) Model {
	l := list.New(Items(logs), list.NewDefaultDelegate(), width, height)
	l.Title = "Weight history"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return Model{list: l}
}

// Items lists logs newest first, each with its change from the day before.
func Items(logs []models.WeightLog) []list.Item {
	items := make([]list.Item, len(logs))
	for i, l := range logs {
		it := Item{Log: l, First: i == 0}
		if i > 0 {
			it.Delta = l.Weight - logs[i-1].Weight
		}
		items[len(logs)-1-i] = it
	}
	return items
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "No weight logged yet. Press 'w' to add today's weight."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m *Model) SetLogs(logs []models.WeightLog) tea.Cmd {
	return m.list.SetItems(Items(logs))
}

func (m Model) Len() int {
	return len(m.list.Items())
}

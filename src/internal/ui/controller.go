// Package ui hosts the interactive search box as a terminal program, the
// idiomatic-Go stand-in for the original window/tab-embedded search box: a
// text field, a debounced query pipeline, and a results list driven by the
// search package's index and the playlist package's entries.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	l "github.com/sirupsen/logrus"
	"gitlab.com/mipimipi/libsearch/src/internal/playlist"
	"gitlab.com/mipimipi/libsearch/src/internal/search"
)

var log *l.Entry = l.WithFields(l.Fields{"srv": "ui"})

// debounce is the delay between the last keystroke and a query actually
// running, matching the original search box's 300ms debounce timer.
const debounce = 300 * time.Millisecond

// visibility is the three exclusive UI states, keyed on library/index
// existence rather than on the query text: a search box always shows
// *something* about the library it is attached to, whether or not the user
// has typed a query yet.
type visibility int

const (
	// Help: no library playlist is attached yet - show the help label only.
	Help visibility = iota
	// Wait: the library playlist exists but the index has not finished
	// building (or is mid-rebuild) - show the wait label only.
	Wait
	// Results: the index is built - show the result list and stats label.
	Results
)

const (
	helpText = "type to search your library"
	waitText = "please wait for the library index to finish building..."
)

// resultItem adapts a search.Item to bubbles/list's DefaultItem interface.
type resultItem struct {
	item *search.Item
}

func (r resultItem) Title() string       { return search.Label(r.item, false) }
func (r resultItem) Description() string { return r.item.Field.String() }
func (r resultItem) FilterValue() string { return r.item.Name }

// debounceMsg carries the generation it was scheduled under, so a Model
// can discard it if a later keystroke has since superseded it.
type debounceMsg struct {
	generation int64
}

// Model is the bubbletea program model for the search box.
type Model struct {
	index *search.Index

	// manager is the playlist host: it supplies the library TupleSource
	// result item Matches index into, the currently active playlist
	// Add-to-playlist targets, and the Play/Create-playlist allocation
	// primitives.
	manager *playlist.Manager

	maxResults int

	input      textinput.Model
	results    list.Model
	timerArmed bool // a debounce timer is currently armed and unfired
	generation int64
	status     string

	lastResult search.Result
	err        error

	width, height int
}

// New builds a search box model over idx, whose tuples come from
// manager.Library(). maxResults bounds how many rows a query may return
// before the result is reported as truncated.
func New(idx *search.Index, manager *playlist.Manager, maxResults int) Model {
	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.Focus()

	delegate := list.NewDefaultDelegate()
	results := list.New(nil, delegate, 0, 0)
	results.Title = "Results"
	results.SetShowStatusBar(false)
	results.SetShowHelp(false)

	return Model{
		index:      idx,
		manager:    manager,
		maxResults: maxResults,
		input:      ti,
		results:    results,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.results.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case debounceMsg:
		if msg.generation != m.generation {
			// a newer keystroke has already superseded this debounce window.
			return m, nil
		}
		return m.runQuery()
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "enter":
		return m.dispatch(Model.play)
	case "ctrl+n":
		return m.dispatch(Model.createPlaylist)
	case "ctrl+a":
		return m.dispatch(Model.addToPlaylist)
	case "ctrl+e":
		return m.dispatch(Model.exportSelection)
	}

	m.status = ""

	prevValue := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() == prevValue {
		return m, cmd
	}

	if m.input.Value() == "" {
		m.timerArmed = false
		m.lastResult = search.Result{}
		m.results.SetItems(nil)
		return m, cmd
	}

	m.timerArmed = true
	m.generation++
	gen := m.generation
	return m, tea.Batch(cmd, tea.Tick(debounce, func(time.Time) tea.Msg {
		return debounceMsg{generation: gen}
	}))
}

// dispatch fires a pending debounced search synchronously, if one is armed,
// before running action - so the results an action reads always match what
// a keystroke has already enqueued, never a stale pre-keystroke query.
func (m Model) dispatch(action func(Model, *search.Item) (tea.Model, tea.Cmd)) (tea.Model, tea.Cmd) {
	if m.timerArmed {
		next, _ := m.runQuery()
		m = next.(Model)
	}

	sel, ok := m.results.SelectedItem().(resultItem)
	if !ok {
		return m, nil
	}
	return action(m, sel.item)
}

// runQuery tokenizes and runs the current input against the index,
// updating the results list and stats.
func (m Model) runQuery() (tea.Model, tea.Cmd) {
	m.timerArmed = false

	terms, err := search.Tokenize(m.input.Value())
	if err != nil {
		m.err = err
		m.results.SetItems(nil)
		return m, nil
	}
	m.err = nil

	if !m.index.Valid() {
		log.Trace("query run while index invalid, result reflects an empty index")
	}

	res := search.Search(m.index, terms, m.maxResults)
	m.lastResult = res

	items := make([]list.Item, len(res.Items))
	for i, it := range res.Items {
		items[i] = resultItem{item: it}
	}
	m.results.SetItems(items)

	return m, nil
}

// state reports which of the three exclusive UI states currently applies.
func (m Model) state() visibility {
	if m.manager == nil || m.manager.Library() == nil {
		return Help
	}
	if !m.index.Valid() {
		return Wait
	}
	return Results
}

// StatsLine renders the current result-count line, or an empty string
// outside the Results state.
func (m Model) StatsLine() string {
	if m.state() != Results {
		return ""
	}
	return search.StatsLabel(m.lastResult)
}

func (m Model) View() string {
	var b []byte
	b = append(b, []byte(m.input.View())...)
	b = append(b, '\n')

	switch m.state() {
	case Help:
		b = append(b, []byte(helpText)...)
		return string(b)
	case Wait:
		b = append(b, []byte(waitText)...)
		return string(b)
	}

	if m.err != nil {
		b = append(b, []byte(m.err.Error())...)
		return string(b)
	}

	b = append(b, []byte(m.StatsLine())...)
	b = append(b, '\n')
	b = append(b, []byte(m.results.View())...)

	if m.status != "" {
		b = append(b, '\n')
		b = append(b, []byte(m.status)...)
	}

	return string(b)
}

// Run starts the bubbletea program and blocks until the user quits.
func Run(ctx context.Context, idx *search.Index, manager *playlist.Manager, maxResults int) error {
	p := tea.NewProgram(New(idx, manager, maxResults))
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

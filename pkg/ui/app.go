package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yair/eventscout/pkg/domain"
	"github.com/yair/eventscout/pkg/listing"
)

// loadMoreThreshold is how close to the end of the list the cursor has to
// get before the next page is requested.
const loadMoreThreshold = 3

type screen int

const (
	screenList screen = iota
	screenDetail
	screenFavorites
)

type focusArea int

const (
	focusKeyword focusArea = iota
	focusCity
	focusSegment
	focusResults
	focusCount
)

// Key bindings
var keys = struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Next      key.Binding
	Prev      key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding
	Back      key.Binding
	Search    key.Binding
	Favorites key.Binding
	Toggle    key.Binding
}{
	Quit:      key.NewBinding(key.WithKeys("q")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	Next:      key.NewBinding(key.WithKeys("tab")),
	Prev:      key.NewBinding(key.WithKeys("shift+tab")),
	Up:        key.NewBinding(key.WithKeys("k", "up")),
	Down:      key.NewBinding(key.WithKeys("j", "down")),
	Left:      key.NewBinding(key.WithKeys("h", "left")),
	Right:     key.NewBinding(key.WithKeys("l", "right")),
	Enter:     key.NewBinding(key.WithKeys("enter")),
	Back:      key.NewBinding(key.WithKeys("esc", "backspace")),
	Search:    key.NewBinding(key.WithKeys("r")),
	Favorites: key.NewBinding(key.WithKeys("F")),
	Toggle:    key.NewBinding(key.WithKeys("f", " ")),
}

// AppConfig holds the command functions the App drives. The App never
// touches the controller or the store directly.
type AppConfig struct {
	// SetField records a filter edit. It is called synchronously from
	// Update and must not block.
	SetField       func(field domain.FilterField, value string)
	Search         func() tea.Cmd
	LoadMore       func() tea.Cmd
	LoadSegments   func() tea.Cmd
	LoadFavorites  func() tea.Cmd
	CheckFavorite  func(id string) tea.Cmd
	ToggleFavorite func(event domain.Event) tea.Cmd
	// Close tears down the listing screen before the program exits.
	Close func()
}

// App is the root Bubble Tea model.
type App struct {
	cfg AppConfig

	screen     screen
	returnTo   screen
	focus      focusArea
	keyword    textinput.Model
	city       textinput.Model
	segments   []domain.Segment
	segmentIdx int
	spinner    spinner.Model

	state  listing.State
	cursor int

	detail      domain.Event
	saved       bool
	savedKnown  bool
	favorites   []domain.Event
	favCursor   int
	storageErr  error
	segmentsErr error

	width  int
	height int
}

func NewApp(cfg AppConfig) App {
	keyword := textinput.New()
	keyword.Placeholder = "Search events..."
	keyword.Prompt = ""
	keyword.CharLimit = 64
	keyword.Focus()

	city := textinput.New()
	city.Placeholder = "Any city"
	city.Prompt = ""
	city.CharLimit = 64

	s := spinner.New()
	s.Spinner = spinner.Dot

	return App{
		cfg:      cfg,
		keyword:  keyword,
		city:     city,
		segments: []domain.Segment{domain.AllEventTypes},
		spinner:  s,
		state:    listing.State{Events: []domain.Event{}},
	}
}

// Init loads the category picker and runs the first search.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, a.spinner.Tick}
	if a.cfg.LoadSegments != nil {
		cmds = append(cmds, a.cfg.LoadSegments())
	}
	if a.cfg.Search != nil {
		cmds = append(cmds, a.cfg.Search())
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) {
			return a.quit()
		}
		switch a.screen {
		case screenDetail:
			return a.updateDetail(msg)
		case screenFavorites:
			return a.updateFavorites(msg)
		default:
			return a.updateList(msg)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.keyword.Width = max(msg.Width-16, 10)
		a.city.Width = max(msg.Width-16, 10)
		return a, nil

	case StateChanged:
		a.state = msg.State
		if a.cursor >= len(a.state.Events) {
			a.cursor = max(len(a.state.Events)-1, 0)
		}
		return a, nil

	case SegmentsLoaded:
		a.segmentsErr = msg.Err
		if msg.Err == nil {
			a.segments = append([]domain.Segment{domain.AllEventTypes}, msg.Segments...)
			a.segmentIdx = 0
		}
		return a, nil

	case FavoritesLoaded:
		a.storageErr = msg.Err
		if msg.Err == nil {
			a.favorites = msg.Events
			if a.favCursor >= len(a.favorites) {
				a.favCursor = max(len(a.favorites)-1, 0)
			}
		}
		return a, nil

	case FavoriteStatus:
		if msg.ID != a.detail.ID {
			return a, nil
		}
		a.storageErr = msg.Err
		if msg.Err == nil {
			a.saved = msg.Saved
			a.savedKnown = true
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, a.updateFocusedInput(msg)
}

func (a App) quit() (tea.Model, tea.Cmd) {
	if a.cfg.Close != nil {
		a.cfg.Close()
	}
	return a, tea.Quit
}

func (a App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Next):
		return a.setFocus((a.focus + 1) % focusCount)
	case key.Matches(msg, keys.Prev):
		return a.setFocus((a.focus + focusCount - 1) % focusCount)
	}

	switch a.focus {
	case focusKeyword, focusCity:
		if key.Matches(msg, keys.Enter) {
			return a, a.search()
		}
		return a.updateInput(msg)

	case focusSegment:
		switch {
		case key.Matches(msg, keys.Left):
			return a.selectSegment(a.segmentIdx - 1)
		case key.Matches(msg, keys.Right):
			return a.selectSegment(a.segmentIdx + 1)
		case key.Matches(msg, keys.Enter):
			return a, a.search()
		case key.Matches(msg, keys.Quit):
			return a.quit()
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return a.quit()
	case key.Matches(msg, keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case key.Matches(msg, keys.Down):
		if a.cursor < len(a.state.Events)-1 {
			a.cursor++
		}
		return a, a.maybeLoadMore()
	case key.Matches(msg, keys.Enter):
		if a.cursor < len(a.state.Events) {
			return a.openDetail(a.state.Events[a.cursor], screenList)
		}
		return a, nil
	case key.Matches(msg, keys.Search):
		return a, a.search()
	case key.Matches(msg, keys.Favorites):
		return a.openFavorites()
	}
	return a, nil
}

func (a App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := domain.FieldKeyword
	input := &a.keyword
	if a.focus == focusCity {
		field = domain.FieldCity
		input = &a.city
	}

	before := input.Value()
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)

	if value := input.Value(); value != before && a.cfg.SetField != nil {
		a.cfg.SetField(field, value)
	}
	return a, cmd
}

// updateFocusedInput forwards non-key messages such as cursor blinks.
func (a *App) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.focus {
	case focusKeyword:
		a.keyword, cmd = a.keyword.Update(msg)
	case focusCity:
		a.city, cmd = a.city.Update(msg)
	}
	return cmd
}

func (a App) setFocus(focus focusArea) (tea.Model, tea.Cmd) {
	a.focus = focus
	a.keyword.Blur()
	a.city.Blur()

	switch focus {
	case focusKeyword:
		return a, a.keyword.Focus()
	case focusCity:
		return a, a.city.Focus()
	}
	return a, nil
}

func (a App) selectSegment(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(a.segments) || idx == a.segmentIdx {
		return a, nil
	}
	a.segmentIdx = idx
	if a.cfg.SetField != nil {
		a.cfg.SetField(domain.FieldSegment, a.segments[idx].ID)
	}
	return a, nil
}

func (a App) search() tea.Cmd {
	if a.cfg.Search == nil {
		return nil
	}
	return a.cfg.Search()
}

func (a App) maybeLoadMore() tea.Cmd {
	if a.cfg.LoadMore == nil || a.state.Loading() || len(a.state.Events) == 0 {
		return nil
	}
	if a.cursor < len(a.state.Events)-loadMoreThreshold {
		return nil
	}
	return a.cfg.LoadMore()
}

func (a App) openDetail(event domain.Event, from screen) (tea.Model, tea.Cmd) {
	a.screen = screenDetail
	a.returnTo = from
	a.detail = event
	a.saved = false
	a.savedKnown = false
	a.storageErr = nil

	if a.cfg.CheckFavorite == nil {
		return a, nil
	}
	return a, a.cfg.CheckFavorite(event.ID)
}

func (a App) openFavorites() (tea.Model, tea.Cmd) {
	a.screen = screenFavorites
	a.storageErr = nil
	if a.cfg.LoadFavorites == nil {
		return a, nil
	}
	return a, a.cfg.LoadFavorites()
}

func (a App) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		if a.returnTo == screenFavorites {
			return a.openFavorites()
		}
		a.screen = screenList
		return a, nil
	case key.Matches(msg, keys.Toggle):
		if a.cfg.ToggleFavorite == nil {
			return a, nil
		}
		return a, a.cfg.ToggleFavorite(a.detail)
	case key.Matches(msg, keys.Quit):
		return a.quit()
	}
	return a, nil
}

func (a App) updateFavorites(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		a.screen = screenList
		return a, nil
	case key.Matches(msg, keys.Up):
		if a.favCursor > 0 {
			a.favCursor--
		}
		return a, nil
	case key.Matches(msg, keys.Down):
		if a.favCursor < len(a.favorites)-1 {
			a.favCursor++
		}
		return a, nil
	case key.Matches(msg, keys.Enter):
		if a.favCursor < len(a.favorites) {
			return a.openDetail(a.favorites[a.favCursor], screenFavorites)
		}
		return a, nil
	case key.Matches(msg, keys.Quit):
		return a.quit()
	}
	return a, nil
}

// Cursor returns the results cursor position (for testing).
func (a App) Cursor() int {
	return a.cursor
}

// Screen names the active screen (for testing).
func (a App) Screen() string {
	switch a.screen {
	case screenDetail:
		return "detail"
	case screenFavorites:
		return "favorites"
	}
	return "list"
}

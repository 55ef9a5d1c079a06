package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pado/internal/breathing"
	"github.com/julianstephens/pado/internal/constants"
	"github.com/julianstephens/pado/internal/models"
	"github.com/julianstephens/pado/internal/overlay"
	"github.com/julianstephens/pado/internal/session"
	"github.com/julianstephens/pado/internal/storage"
	"github.com/julianstephens/pado/internal/tui/components/dayview"
	"github.com/julianstephens/pado/internal/tui/components/weatherlist"
)

type Screen int

const (
	ScreenOnboarding Screen = iota
	ScreenMain
	ScreenDiary
	ScreenGuided
	ScreenBreathing
	ScreenCalendar
	ScreenTimer
	ScreenSettings
)

// choice is one row of the diary chooser or menu sheet
type choice struct {
	Title       string
	Description string
	Screen      Screen
}

var (
	diaryChoices = []choice{
		{"자유롭게 적기", "내 마음을 자유롭게 기록해요", ScreenDiary},
		{"질문 따라가기", "질문에 답하며 마음을 정리해요", ScreenGuided},
	}
	menuChoices = []choice{
		{"캘린더", "지난 기록을 돌아봐요", ScreenCalendar},
		{"예약종료", "타이머를 설정해요", ScreenTimer},
		{"설정", "앱 설정을 변경해요", ScreenSettings},
	}
)

const (
	settingNotifications = iota
	settingReminderAt
	settingClear
	settingCount
)

const (
	breathingTick = 250 * time.Millisecond
	timerTick     = time.Second
)

// tickMsg drives the screen-owned countdowns. Ticks from a loop that has
// since been replaced carry a stale id and are dropped.
type tickMsg struct {
	id int
	at time.Time
}

type Model struct {
	store   *storage.Store
	session *session.Session
	now     func() time.Time

	screen   Screen
	only     bool // a single screen was launched; leaving it quits
	keys     KeyMap
	help     help.Model
	width    int
	height   int
	status   string
	quitting bool
	tickID   int

	// main
	overlay     *overlay.Machine
	weather     models.WeatherType
	weatherList weatherlist.Model
	sheetCursor int

	// diary and guided diary
	editor  textarea.Model
	step    int
	answers []models.QuestionAnswer

	// breathing
	exercise *breathing.Exercise
	saved    bool

	// calendar
	year    int
	month   time.Month
	day     int
	dayView dayview.Model
	showDay bool
	records map[string]models.DayRecord

	// timer
	timerCursor int
	timerDone   bool

	// settings
	settingsCursor int
	confirmClear   bool
}

type Option func(*Model)

// Only runs a single screen; leaving it ends the program
func Only(s Screen) Option {
	return func(m *Model) {
		m.screen = s
		m.only = true
	}
}

// WithClock replaces time.Now for the breathing exercise
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

func NewModel(store *storage.Store, sess *session.Session, opts ...Option) Model {
	if sess == nil {
		sess = session.New()
	}
	m := Model{
		store:       store,
		session:     sess,
		now:         time.Now,
		screen:      ScreenOnboarding,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		overlay:     &overlay.Machine{},
		weatherList: weatherlist.New(0, 0),
		dayView:     dayview.New(0, 0),
		editor:      newEditor(),
		exercise:    breathing.NewExercise(breathing.DefaultPattern),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refreshWeather()
	m.enter(m.screen)
	return m
}

func newEditor() textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(60)
	ta.SetHeight(10)
	return ta
}

func (m Model) Init() tea.Cmd {
	return m.screenInit()
}

// screenInit starts whatever the current screen needs running
func (m *Model) screenInit() tea.Cmd {
	switch m.screen {
	case ScreenDiary, ScreenGuided:
		return textarea.Blink
	case ScreenTimer:
		return m.startTick(timerTick)
	case ScreenMain:
		if m.session.Active() {
			return m.startTick(timerTick)
		}
	}
	return nil
}

// startTick begins a new tick loop, orphaning any previous one
func (m *Model) startTick(interval time.Duration) tea.Cmd {
	m.tickID++
	return tick(m.tickID, interval)
}

func tick(id int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg{id: id, at: t}
	})
}

func (m *Model) refreshWeather() {
	if w, ok := m.store.GetSelectedWeather(); ok {
		m.weather = w
	} else {
		m.weather = models.DefaultDisplayWeather
	}
}

// enter resets the state of screen s and makes it current
func (m *Model) enter(s Screen) {
	m.screen = s
	m.tickID++
	switch s {
	case ScreenMain:
		m.overlay.Reset()
		m.refreshWeather()
	case ScreenDiary:
		m.editor.Reset()
		m.editor.Placeholder = "내 마음을 글로 남겨두는 건 어떨까요?\n누구와 무엇을 했는지, 내 기분은 어땠는지 자유롭게 기록해보세요."
		if r, ok := m.store.GetTodayRecord(); ok && r.Diary != nil && r.Diary.Type == models.DiaryFree {
			m.editor.SetValue(r.Diary.Content)
		}
		m.editor.Focus()
	case ScreenGuided:
		m.step = 0
		m.answers = models.EmptyGuidedAnswers()
		if r, ok := m.store.GetTodayRecord(); ok && r.Diary != nil && r.Diary.Type == models.DiaryGuided && len(r.Diary.Answers) == len(models.GuidedQuestions) {
			m.answers = append([]models.QuestionAnswer(nil), r.Diary.Answers...)
		}
		m.editor.Placeholder = "여기에 답변을 적어보세요..."
		m.loadAnswer()
		m.editor.Focus()
	case ScreenBreathing:
		m.exercise.Restart()
		m.saved = false
	case ScreenCalendar:
		today, _ := time.Parse(constants.DateFormat, m.store.Today())
		m.year, m.month, m.day = today.Year(), today.Month(), today.Day()
		m.records = m.store.GetAllRecords()
		m.showDay = false
	case ScreenTimer:
		m.timerCursor = 0
		m.timerDone = false
	case ScreenSettings:
		m.settingsCursor = 0
		m.confirmClear = false
	}
}

// navigate switches screens, quitting instead when a single screen was launched
func (m Model) navigate(s Screen) (tea.Model, tea.Cmd) {
	if m.only && s == ScreenMain {
		m.quitting = true
		return m, tea.Quit
	}
	m.editor.Blur()
	m.enter(s)
	return m, m.screenInit()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m Model) ShortHelp() []key.Binding {
	switch m.screen {
	case ScreenOnboarding:
		return []key.Binding{m.keys.Enter, m.keys.Quit}
	case ScreenMain:
		if m.overlay.IsOpen() {
			return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Back}
		}
		return []key.Binding{m.keys.Weather, m.keys.Breathe, m.keys.Diary, m.keys.Menu, m.keys.Back, m.keys.Quit, m.keys.Help}
	case ScreenDiary:
		return []key.Binding{m.keys.Save, m.keys.Back}
	case ScreenGuided:
		return []key.Binding{m.keys.Next, m.keys.Prev, m.keys.Back}
	case ScreenBreathing:
		return []key.Binding{m.keys.Enter, m.keys.Restart, m.keys.Back}
	case ScreenCalendar:
		return []key.Binding{m.keys.PrevMonth, m.keys.NextMonth, m.keys.Enter, m.keys.Back}
	case ScreenTimer:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Cancel, m.keys.Back}
	case ScreenSettings:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Left, m.keys.Right, m.keys.Back}
	}
	return []key.Binding{m.keys.Back, m.keys.ForceQuit}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Back, m.keys.Quit, m.keys.ForceQuit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Enter}
	return [][]key.Binding{global, navigation, m.ShortHelp()}
}

package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pado/internal/kv"
	"github.com/julianstephens/pado/internal/models"
	"github.com/julianstephens/pado/internal/overlay"
	"github.com/julianstephens/pado/internal/session"
	"github.com/julianstephens/pado/internal/storage"
	"github.com/julianstephens/pado/internal/tui/components/weatherlist"
)

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func setupTestModel(t *testing.T, opts ...Option) (Model, *storage.Store, *testClock) {
	t.Helper()
	clock := &testClock{t: time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)}
	store := storage.New(kv.NewMemory(), storage.WithClock(clock.Now), storage.WithLocation(time.UTC))
	sess := session.New(session.WithClock(clock.Now))
	m := NewModel(store, sess, append([]Option{WithClock(clock.Now)}, opts...)...)
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, store, clock
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func update(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m = update(m, keyMsg(k))
	}
	return m
}

func TestOnboardingAndBack(t *testing.T) {
	m, _, _ := setupTestModel(t)
	if m.screen != ScreenOnboarding {
		t.Fatalf("initial screen = %v, want onboarding", m.screen)
	}

	m = press(m, "enter")
	if m.screen != ScreenMain {
		t.Fatalf("screen = %v, want main", m.screen)
	}

	m = press(m, "esc")
	if m.screen != ScreenOnboarding {
		t.Errorf("back from main with nothing open: screen = %v, want onboarding", m.screen)
	}

	m = press(m, "q")
	if !m.quitting {
		t.Error("q on onboarding should quit")
	}
}

func TestWeatherSheetPicksWeather(t *testing.T) {
	m, store, _ := setupTestModel(t)
	m = press(m, "enter", "w")
	if m.overlay.State() != overlay.WeatherSheet {
		t.Fatalf("overlay = %v, want weather sheet", m.overlay.State())
	}
	if !strings.Contains(m.View(), "맑음") {
		t.Errorf("weather sheet not rendered:\n%s", m.View())
	}

	next, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("picking a weather should produce a command")
	}
	pick, ok := cmd().(weatherlist.PickWeatherMsg)
	if !ok {
		t.Fatalf("command produced %T, want PickWeatherMsg", cmd())
	}
	m = update(next.(Model), pick)

	if m.overlay.IsOpen() {
		t.Errorf("overlay = %v after pick, want closed", m.overlay.State())
	}
	if m.weather != pick.Weather {
		t.Errorf("displayed weather = %s, want %s", m.weather, pick.Weather)
	}
	if w, ok := store.GetSelectedWeather(); !ok || w != pick.Weather {
		t.Errorf("selected weather = %s, %v", w, ok)
	}
	if r, ok := store.GetTodayRecord(); !ok || r.WeatherType != pick.Weather {
		t.Errorf("today's record = %+v, %v", r, ok)
	}
	if !strings.Contains(m.status, pick.Weather.Info().Korean) {
		t.Errorf("status = %q", m.status)
	}
}

func TestOverlayOpensOneSheetAtATime(t *testing.T) {
	m, _, _ := setupTestModel(t)
	m = press(m, "enter", "d")
	if m.overlay.State() != overlay.DiarySelect {
		t.Fatalf("overlay = %v, want diary select", m.overlay.State())
	}

	m = press(m, "m", "w")
	if m.overlay.State() != overlay.DiarySelect {
		t.Errorf("opening another sheet changed overlay to %v", m.overlay.State())
	}

	m = press(m, "esc")
	if m.overlay.IsOpen() || m.screen != ScreenMain {
		t.Errorf("back with a sheet open: overlay = %v, screen = %v", m.overlay.State(), m.screen)
	}
}

func TestFreeDiary(t *testing.T) {
	m, store, _ := setupTestModel(t)
	m = press(m, "enter", "d", "enter")
	if m.screen != ScreenDiary {
		t.Fatalf("screen = %v, want diary", m.screen)
	}
	if m.overlay.IsOpen() {
		t.Errorf("overlay still open after navigating: %v", m.overlay.State())
	}

	m = press(m, "오늘은 맑았다", "ctrl+s")
	if m.screen != ScreenMain {
		t.Errorf("screen = %v after save, want main", m.screen)
	}
	r, ok := store.GetTodayRecord()
	if !ok || r.Diary == nil {
		t.Fatalf("today's record = %+v, %v", r, ok)
	}
	if r.Diary.Type != models.DiaryFree || r.Diary.Content != "오늘은 맑았다" {
		t.Errorf("diary = %+v", r.Diary)
	}
	if r.WeatherType != models.DefaultRecordWeather {
		t.Errorf("weather = %s, want %s", r.WeatherType, models.DefaultRecordWeather)
	}

	// Reopening starts from the saved text
	m = press(m, "d", "enter")
	if got := m.editor.Value(); got != "오늘은 맑았다" {
		t.Errorf("editor = %q, want saved diary", got)
	}

	m = press(m, "esc")
	if m.screen != ScreenMain {
		t.Errorf("esc from diary: screen = %v", m.screen)
	}
}

func TestGuidedDiary(t *testing.T) {
	m, store, _ := setupTestModel(t)
	m = press(m, "enter", "d", "down", "enter")
	if m.screen != ScreenGuided {
		t.Fatalf("screen = %v, want guided", m.screen)
	}
	if !strings.Contains(m.View(), models.GuidedQuestions[0].Question) {
		t.Errorf("first question not shown:\n%s", m.View())
	}

	m = press(m, "a1", "tab", "a2", "shift+tab")
	if m.step != 0 || m.editor.Value() != "a1" {
		t.Errorf("after prev: step = %d, editor = %q", m.step, m.editor.Value())
	}

	m = press(m, "tab")
	if m.editor.Value() != "a2" {
		t.Errorf("step 2 editor = %q, want a2", m.editor.Value())
	}

	m = press(m, "tab", "a3", "tab")
	if m.screen != ScreenMain {
		t.Fatalf("screen = %v after last step, want main", m.screen)
	}

	r, _ := store.GetTodayRecord()
	if r.Diary == nil || r.Diary.Type != models.DiaryGuided {
		t.Fatalf("diary = %+v", r.Diary)
	}
	for i, want := range []string{"a1", "a2", "a3"} {
		if got := r.Diary.Answers[i]; got.Answer != want || got.Question != models.GuidedQuestions[i].Question {
			t.Errorf("answer %d = %+v, want %q", i, got, want)
		}
	}
}

func TestBreathingRecordsOnce(t *testing.T) {
	m, store, clock := setupTestModel(t, Only(ScreenBreathing))
	if m.screen != ScreenBreathing {
		t.Fatalf("screen = %v, want breathing", m.screen)
	}

	m = press(m, "enter")
	if !m.exercise.Started() {
		t.Fatal("enter should start the exercise")
	}

	clock.Advance(10 * time.Second)
	next, cmd := m.Update(tickMsg{id: m.tickID})
	m = next.(Model)
	if cmd == nil {
		t.Error("tick mid-exercise should schedule another tick")
	}
	if _, ok := store.GetTodayRecord(); ok {
		t.Error("record written before the exercise completed")
	}

	clock.Advance(21 * time.Second)
	m = update(m, tickMsg{id: m.tickID}, tickMsg{id: m.tickID})
	r, ok := store.GetTodayRecord()
	if !ok || len(r.Breathings) != 1 {
		t.Fatalf("breathings = %+v, %v, want one", r.Breathings, ok)
	}
	if r.Breathings[0].Duration != 31 {
		t.Errorf("duration = %d, want 31", r.Breathings[0].Duration)
	}
	if !strings.Contains(m.View(), "잘 하셨어요") {
		t.Errorf("completion message missing:\n%s", m.View())
	}

	m = press(m, "enter")
	if !m.quitting {
		t.Error("finishing a standalone exercise should quit")
	}
}

func TestBreathingAbandonedIsNotRecorded(t *testing.T) {
	m, store, clock := setupTestModel(t)
	m = press(m, "enter", "b", "enter")
	if m.screen != ScreenBreathing {
		t.Fatalf("screen = %v, want breathing", m.screen)
	}
	staleID := m.tickID

	clock.Advance(5 * time.Second)
	m = press(m, "esc")
	if m.screen != ScreenMain {
		t.Fatalf("screen = %v, want main", m.screen)
	}

	clock.Advance(time.Minute)
	m = update(m, tickMsg{id: staleID})
	if _, ok := store.GetTodayRecord(); ok {
		t.Error("an abandoned exercise must not be recorded")
	}
}

func TestCalendar(t *testing.T) {
	m, store, _ := setupTestModel(t)
	store.SaveRecord(models.DayRecord{Date: "2024-03-02", WeatherType: models.WeatherSnowy})

	m = press(m, "enter", "m", "enter")
	if m.screen != ScreenCalendar {
		t.Fatalf("screen = %v, want calendar", m.screen)
	}
	if m.year != 2024 || m.month != time.March || m.day != 15 {
		t.Fatalf("cursor = %d-%v-%d, want today", m.year, m.month, m.day)
	}
	if !strings.Contains(m.View(), "2024년 3월") || !strings.Contains(m.View(), "❄️") {
		t.Errorf("calendar view:\n%s", m.View())
	}

	m = press(m, "[")
	if m.month != time.February || m.day != 15 {
		t.Errorf("prev month cursor = %v-%d", m.month, m.day)
	}
	m = press(m, "]")
	for i := 0; i < 13; i++ {
		m = press(m, "left")
	}
	if m.cursorDate() != "2024-03-02" {
		t.Fatalf("cursor = %s, want 2024-03-02", m.cursorDate())
	}

	m = press(m, "enter")
	if !m.showDay || m.dayView.Record == nil || m.dayView.Record.Date != "2024-03-02" {
		t.Fatalf("detail not shown: showDay = %v", m.showDay)
	}
	m = press(m, "esc")
	if m.showDay || m.screen != ScreenCalendar {
		t.Errorf("esc should close the detail first")
	}

	m = press(m, "up")
	if m.cursorDate() != "2024-02-24" {
		t.Errorf("up across months = %s, want 2024-02-24", m.cursorDate())
	}
	m = press(m, "enter")
	if m.showDay || m.status == "" {
		t.Errorf("a day without a record should only show a status")
	}

	m = press(m, "esc")
	if m.screen != ScreenMain {
		t.Errorf("screen = %v, want main", m.screen)
	}
}

func TestTimer(t *testing.T) {
	m, _, clock := setupTestModel(t)
	m = press(m, "enter", "m", "down", "enter")
	if m.screen != ScreenTimer {
		t.Fatalf("screen = %v, want timer", m.screen)
	}

	m = press(m, "enter")
	left, ok := m.session.Remaining()
	if !ok || left != 15*time.Minute {
		t.Fatalf("remaining = %v, %v, want 15m", left, ok)
	}
	if !strings.Contains(m.View(), "15:00") {
		t.Errorf("timer view:\n%s", m.View())
	}

	m = press(m, "c")
	if m.session.Active() {
		t.Fatal("c should cancel the timer")
	}

	m = press(m, "down", "enter")
	if left, _ := m.session.Remaining(); left != 30*time.Minute {
		t.Fatalf("remaining = %v, want 30m", left)
	}

	// The timer belongs to the session and survives leaving the screen
	m = press(m, "esc")
	if !m.session.Active() || !strings.Contains(m.View(), "예약종료까지") {
		t.Errorf("main view should show the running timer:\n%s", m.View())
	}
	m = press(m, "m", "down", "enter")

	clock.Advance(31 * time.Minute)
	m = update(m, tickMsg{id: m.tickID})
	if !m.timerDone {
		t.Fatal("elapsed timer should show the completion dialog")
	}
	if !strings.Contains(m.View(), timerDoneTitle) {
		t.Errorf("dialog missing:\n%s", m.View())
	}
	m = press(m, "enter")
	if m.timerDone || m.session.Active() {
		t.Error("dialog should be dismissed and timer cleared")
	}
}

func TestTimerElapsedOnMain(t *testing.T) {
	m, _, clock := setupTestModel(t)
	m.session.StartTimer(time.Minute)
	m = press(m, "enter")

	clock.Advance(2 * time.Minute)
	m = update(m, tickMsg{id: m.tickID})
	if !strings.Contains(m.status, timerDoneTitle) {
		t.Errorf("status = %q, want timer completion", m.status)
	}
}

func TestSettings(t *testing.T) {
	m, store, _ := setupTestModel(t)
	store.PickWeather(models.WeatherStorm)

	m = press(m, "enter", "m", "down", "down", "enter")
	if m.screen != ScreenSettings {
		t.Fatalf("screen = %v, want settings", m.screen)
	}

	m = press(m, "enter")
	if store.GetSettings().NotificationEnabled {
		t.Error("enter on notifications should toggle them off")
	}

	m = press(m, "down", "right")
	if got := store.GetSettings().ReminderAt; got != "21:30" {
		t.Errorf("reminderAt = %s, want 21:30", got)
	}
	m = press(m, "left", "left")
	if got := store.GetSettings().ReminderAt; got != "20:30" {
		t.Errorf("reminderAt = %s, want 20:30", got)
	}

	m = press(m, "down", "enter")
	if !m.confirmClear {
		t.Fatal("clear should ask for confirmation")
	}
	m = press(m, "n")
	if m.confirmClear {
		t.Fatal("n should cancel")
	}
	if _, ok := store.GetTodayRecord(); !ok {
		t.Fatal("cancelled clear removed records")
	}

	m = press(m, "enter", "y")
	if _, ok := store.GetTodayRecord(); ok {
		t.Error("confirmed clear should remove records")
	}
	if _, ok := store.GetSelectedWeather(); ok {
		t.Error("confirmed clear should remove the selected weather")
	}
	if got := store.GetSettings(); got.NotificationEnabled || got.ReminderAt != "20:30" {
		t.Errorf("clear must keep settings, got %+v", got)
	}

	m = press(m, "esc")
	if m.weather != models.DefaultDisplayWeather {
		t.Errorf("main weather = %s after clear, want %s", m.weather, models.DefaultDisplayWeather)
	}
}

func TestShiftReminderWraps(t *testing.T) {
	m, store, _ := setupTestModel(t)
	at := "00:00"
	store.SaveSettings(models.SettingsPatch{ReminderAt: &at})

	m.shiftReminder(-reminderStep)
	if got := store.GetSettings().ReminderAt; got != "23:30" {
		t.Errorf("reminderAt = %s, want 23:30", got)
	}
	m.shiftReminder(reminderStep)
	if got := store.GetSettings().ReminderAt; got != "00:00" {
		t.Errorf("reminderAt = %s, want 00:00", got)
	}
}

func TestForceQuit(t *testing.T) {
	m, _, _ := setupTestModel(t)
	m = press(m, "enter", "d", "enter", "ctrl+c")
	if !m.quitting {
		t.Error("ctrl+c should quit from any screen")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestStaleTickIgnored(t *testing.T) {
	m, _, _ := setupTestModel(t, Only(ScreenBreathing))
	m = press(m, "enter")
	next, cmd := m.Update(tickMsg{id: m.tickID - 1})
	if cmd != nil {
		t.Error("a stale tick must not schedule another")
	}
	if next.(Model).saved {
		t.Error("a stale tick must not complete the exercise")
	}
}

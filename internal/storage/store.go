// Package storage is the record store: every day record, the settings and
// the currently selected weather, persisted as three serialized values in a
// kv.Backend.
//
// Reads never fail. Missing, unreadable or corrupt values come back as empty
// or default values and the problem is logged. Writes that fail are logged
// and dropped.
package storage

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/pado/internal/constants"
	"github.com/julianstephens/pado/internal/kv"
	"github.com/julianstephens/pado/internal/logger"
	"github.com/julianstephens/pado/internal/models"
)

type Store struct {
	backend kv.Backend
	now     func() time.Time
	loc     *time.Location

	// mu serializes read-modify-write cycles within this process
	mu sync.Mutex
}

type Option func(*Store)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation sets the zone that decides which calendar day is "today"
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func New(backend kv.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		now:     time.Now,
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Backend() kv.Backend { return s.backend }

// Today is the local calendar date as YYYY-MM-DD
func (s *Store) Today() string {
	return s.now().In(s.loc).Format(constants.DateFormat)
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(constants.TimestampFormat)
}

func (s *Store) GetAllRecords() map[string]models.DayRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, _ := s.loadRecords()
	return records
}

func (s *Store) GetRecord(date string) (models.DayRecord, bool) {
	records := s.GetAllRecords()
	r, ok := records[date]
	return r, ok
}

func (s *Store) GetTodayRecord() (models.DayRecord, bool) {
	return s.GetRecord(s.Today())
}

// SaveRecord upserts record under its date, replacing any previous entry in full
func (s *Store) SaveRecord(record models.DayRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, unreadable := s.loadRecords()
	record.UpdatedAt = s.timestamp()
	record.Normalize()
	records[record.Date] = record
	delete(unreadable, record.Date)
	s.saveRecords(records, unreadable)
}

// CreateOrUpdateTodayRecord merges one action into today's record. The
// weather is always overwritten, a non-nil diary replaces the old one, a
// non-nil breathing session is appended and every other field is kept.
func (s *Store) CreateOrUpdateTodayRecord(weather models.WeatherType, diary *models.Diary, breathing *models.BreathingRecord) models.DayRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, unreadable := s.loadRecords()
	today := s.Today()
	now := s.timestamp()

	record := models.DayRecord{
		Date:        today,
		WeatherType: weather,
		Breathings:  []models.BreathingRecord{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if existing, ok := records[today]; ok {
		record.Diary = existing.Diary
		record.Breathings = append(record.Breathings, existing.Breathings...)
		if existing.CreatedAt != "" {
			record.CreatedAt = existing.CreatedAt
		}
	}

	if diary != nil {
		d := *diary
		if d.Answers == nil {
			d.Answers = []models.QuestionAnswer{}
		}
		record.Diary = &d
	}
	if breathing != nil {
		record.Breathings = append(record.Breathings, *breathing)
	}

	records[today] = record
	delete(unreadable, today)
	s.saveRecords(records, unreadable)
	return record
}

// SaveDiary stores diary on today's record under the selected weather
func (s *Store) SaveDiary(diary models.Diary) models.DayRecord {
	return s.CreateOrUpdateTodayRecord(s.recordWeather(), &diary, nil)
}

// RecordBreathing appends a finished breathing session to today's record
func (s *Store) RecordBreathing(duration time.Duration, completedAt time.Time) models.DayRecord {
	entry := models.BreathingRecord{
		Duration:    int(duration.Round(time.Second) / time.Second),
		CompletedAt: completedAt.UTC().Format(constants.TimestampFormat),
	}
	return s.CreateOrUpdateTodayRecord(s.recordWeather(), nil, &entry)
}

// PickWeather selects w and stamps it on today's record
func (s *Store) PickWeather(w models.WeatherType) models.DayRecord {
	s.SetSelectedWeather(w)
	return s.CreateOrUpdateTodayRecord(w, nil, nil)
}

func (s *Store) recordWeather() models.WeatherType {
	if w, ok := s.GetSelectedWeather(); ok {
		return w
	}
	return models.DefaultRecordWeather
}

// GetMonthRecords returns the records of one month sorted by date
func (s *Store) GetMonthRecords(year int, month time.Month) []models.DayRecord {
	if month < time.January || month > time.December {
		return []models.DayRecord{}
	}
	prefix := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format(constants.MonthFormat)

	var out []models.DayRecord
	for _, r := range s.GetAllRecords() {
		if strings.HasPrefix(r.Date, prefix) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ClearAllRecords removes every record and the selected weather; settings stay
func (s *Store) ClearAllRecords() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{constants.KeyRecords, constants.KeySelectedWeather} {
		if err := s.backend.Remove(key); err != nil {
			logger.Error("Failed to clear records", "key", key, "error", err)
		}
	}
}

func (s *Store) GetSelectedWeather() (models.WeatherType, bool) {
	raw, ok, err := s.backend.Get(constants.KeySelectedWeather)
	if err != nil {
		logger.Warn("Failed to read selected weather", "error", err)
		return "", false
	}
	if !ok {
		return "", false
	}

	w := models.WeatherType(raw)
	if !w.Valid() {
		// tolerate a JSON-encoded string
		var quoted string
		if json.Unmarshal([]byte(raw), &quoted) == nil {
			w = models.WeatherType(quoted)
		}
	}
	if !w.Valid() {
		logger.Warn("Ignoring unknown selected weather", "value", raw)
		return "", false
	}
	return w, true
}

func (s *Store) SetSelectedWeather(w models.WeatherType) {
	if err := s.backend.Set(constants.KeySelectedWeather, string(w)); err != nil {
		logger.Error("Failed to save selected weather", "error", err)
	}
}

// GetSettings returns the stored settings merged over the defaults
func (s *Store) GetSettings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadSettings()
}

// SaveSettings applies patch to the current settings
func (s *Store) SaveSettings(patch models.SettingsPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.loadSettings().Apply(patch)
	data, err := json.Marshal(updated)
	if err != nil {
		logger.Error("Failed to serialize settings", "error", err)
		return
	}
	if err := s.backend.Set(constants.KeySettings, string(data)); err != nil {
		logger.Error("Failed to save settings", "error", err)
	}
}

func (s *Store) loadSettings() models.Settings {
	settings := models.DefaultSettings()

	raw, ok, err := s.backend.Get(constants.KeySettings)
	if err != nil {
		logger.Warn("Failed to read settings", "error", err)
		return settings
	}
	if !ok || raw == "" {
		return settings
	}

	merged := settings
	if err := json.Unmarshal([]byte(raw), &merged); err != nil {
		logger.Warn("Failed to parse settings, using defaults", "error", err)
		return settings
	}
	if models.ValidateReminderAt(merged.ReminderAt) != nil {
		logger.Warn("Ignoring invalid reminder time", "value", merged.ReminderAt)
		merged.ReminderAt = settings.ReminderAt
	}
	return merged
}

// loadRecords decodes every stored day on its own. Entries that no longer
// decode are logged and left out of the result; their raw JSON comes back in
// unreadable so the next write can keep them.
func (s *Store) loadRecords() (records map[string]models.DayRecord, unreadable map[string]json.RawMessage) {
	records = make(map[string]models.DayRecord)

	raw, ok, err := s.backend.Get(constants.KeyRecords)
	if err != nil {
		logger.Warn("Failed to read records", "error", err)
		return records, nil
	}
	if !ok || raw == "" {
		return records, nil
	}

	var stored map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logger.Warn("Failed to parse records, treating as empty", "error", err)
		return records, nil
	}
	for date, entry := range stored {
		var r models.DayRecord
		if err := json.Unmarshal(entry, &r); err != nil {
			logger.Warn("Skipping unreadable record", "date", date, "error", err)
			if unreadable == nil {
				unreadable = make(map[string]json.RawMessage)
			}
			unreadable[date] = entry
			continue
		}
		if r.Date == "" {
			r.Date = date
		}
		r.Normalize()
		records[date] = r
	}
	return records, unreadable
}

func (s *Store) saveRecords(records map[string]models.DayRecord, unreadable map[string]json.RawMessage) {
	out := make(map[string]json.RawMessage, len(records)+len(unreadable))
	for date, entry := range unreadable {
		out[date] = entry
	}
	for date, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			logger.Error("Failed to serialize record", "date", date, "error", err)
			return
		}
		out[date] = data
	}

	data, err := json.Marshal(out)
	if err != nil {
		logger.Error("Failed to serialize records", "error", err)
		return
	}
	if err := s.backend.Set(constants.KeyRecords, string(data)); err != nil {
		logger.Error("Failed to save records", "error", err)
	}
}

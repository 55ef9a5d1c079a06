package models

import (
	"encoding/json"
	"math"
)

// DiaryType distinguishes free writing from the guided questions
type DiaryType string

const (
	DiaryFree   DiaryType = "free"
	DiaryGuided DiaryType = "guided"
)

// QuestionAnswer is one step of a guided diary
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Diary is the written entry of a day. Content is used by free diaries,
// Answers by guided ones.
type Diary struct {
	Type    DiaryType        `json:"type"`
	Content string           `json:"content"`
	Answers []QuestionAnswer `json:"answers"`
}

// NewFreeDiary builds a free-form diary entry
func NewFreeDiary(content string) Diary {
	return Diary{Type: DiaryFree, Content: content, Answers: []QuestionAnswer{}}
}

// NewGuidedDiary builds a guided diary entry
func NewGuidedDiary(answers []QuestionAnswer) Diary {
	if answers == nil {
		answers = []QuestionAnswer{}
	}
	return Diary{Type: DiaryGuided, Content: "", Answers: answers}
}

// BreathingRecord is one completed breathing session
type BreathingRecord struct {
	Duration    int    `json:"duration"`    // seconds
	CompletedAt string `json:"completedAt"` // ISO timestamp
}

// UnmarshalJSON accepts fractional durations, rounded to whole seconds
func (b *BreathingRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Duration    float64 `json:"duration"`
		CompletedAt string  `json:"completedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.Duration = int(math.Round(raw.Duration))
	b.CompletedAt = raw.CompletedAt
	return nil
}

// DayRecord is everything recorded for one calendar date
type DayRecord struct {
	Date        string            `json:"date"` // YYYY-MM-DD format
	WeatherType WeatherType       `json:"weatherType"`
	Diary       *Diary            `json:"diary"`
	Breathings  []BreathingRecord `json:"breathings"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
}

// Normalize fills collections that older or hand-edited documents may leave null
func (r *DayRecord) Normalize() {
	if r.Breathings == nil {
		r.Breathings = []BreathingRecord{}
	}
	if r.Diary != nil && r.Diary.Answers == nil {
		r.Diary.Answers = []QuestionAnswer{}
	}
}

// TotalBreathingSeconds sums every breathing session of the day
func (r DayRecord) TotalBreathingSeconds() int {
	total := 0
	for _, b := range r.Breathings {
		total += b.Duration
	}
	return total
}

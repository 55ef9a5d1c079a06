package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/pado/internal/models"
)

type DiaryCmd struct {
	Write  DiaryWriteCmd  `cmd:"" help:"Write today's free diary."`
	Guided DiaryGuidedCmd `cmd:"" help:"Answer today's guided questions."`
	Show   DiaryShowCmd   `cmd:"" help:"Show the diary of a day."`
}

type DiaryWriteCmd struct {
	Text string `help:"Diary text. Read from stdin when omitted." short:"t"`
}

func (c *DiaryWriteCmd) Run(ctx *Context) error {
	content := c.Text
	if content == "" {
		data, err := io.ReadAll(ctx.input())
		if err != nil {
			return fmt.Errorf("failed to read diary from stdin: %w", err)
		}
		content = strings.TrimRight(string(data), "\n")
	}

	record := ctx.Store.SaveDiary(models.NewFreeDiary(content))
	ctx.printf("✓ Diary saved for %s\n", record.Date)
	return nil
}

type DiaryGuidedCmd struct {
	Answer []string `help:"Answer to each guided question, in order. Prompts interactively when omitted." short:"a"`
}

func (c *DiaryGuidedCmd) Run(ctx *Context) error {
	if len(c.Answer) > len(models.GuidedQuestions) {
		return fmt.Errorf("too many answers: %d given, there are %d questions", len(c.Answer), len(models.GuidedQuestions))
	}

	answers := models.EmptyGuidedAnswers()
	if len(c.Answer) > 0 {
		for i, a := range c.Answer {
			answers[i].Answer = a
		}
	} else {
		// Start from today's guided answers when there are some
		if today, ok := ctx.Store.GetTodayRecord(); ok && today.Diary != nil && today.Diary.Type == models.DiaryGuided && len(today.Diary.Answers) == len(answers) {
			copy(answers, today.Diary.Answers)
		}
		if err := promptGuided(answers); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				ctx.println("Diary cancelled.")
				return nil
			}
			return err
		}
	}

	record := ctx.Store.SaveDiary(models.NewGuidedDiary(answers))
	ctx.printf("✓ Guided diary saved for %s\n", record.Date)
	return nil
}

func promptGuided(answers []models.QuestionAnswer) error {
	groups := make([]*huh.Group, len(models.GuidedQuestions))
	for i, q := range models.GuidedQuestions {
		groups[i] = huh.NewGroup(
			huh.NewText().
				Title(fmt.Sprintf("%d / %d  %s", i+1, len(models.GuidedQuestions), q.Question)).
				Description(q.Description).
				Placeholder("여기에 답변을 적어보세요...").
				Value(&answers[i].Answer),
		)
	}
	return huh.NewForm(groups...).Run()
}

type DiaryShowCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DiaryShowCmd) Run(ctx *Context) error {
	date, err := parseDate(ctx.Store, c.Date)
	if err != nil {
		return err
	}
	record, ok := ctx.Store.GetRecord(date)
	if !ok || record.Diary == nil {
		return fmt.Errorf("no diary found for %s", date)
	}
	ctx.printf("%s", formatRecord(record))
	return nil
}

package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pado/internal/tui"
)

type BreatheCmd struct {
	Start BreatheStartCmd `cmd:"" default:"1" help:"Run the breathing exercise."`
	Log   BreatheLogCmd   `cmd:"" help:"Record a breathing session without running it."`
}

type BreatheStartCmd struct{}

func (c *BreatheStartCmd) Run(ctx *Context) error {
	model := tui.NewModel(ctx.Store, ctx.Session, tui.Only(tui.ScreenBreathing))
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("breathing screen failed: %w", err)
	}
	return nil
}

type BreatheLogCmd struct {
	Seconds int `help:"Length of the session in seconds." required:""`
}

func (c *BreatheLogCmd) Run(ctx *Context) error {
	if c.Seconds <= 0 {
		return fmt.Errorf("seconds must be positive, got %d", c.Seconds)
	}
	record := ctx.Store.RecordBreathing(time.Duration(c.Seconds)*time.Second, time.Now())
	ctx.printf("✓ Breathing recorded for %s (%d sessions today)\n", record.Date, len(record.Breathings))
	return nil
}

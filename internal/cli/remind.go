package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/pado/internal/logger"
	"github.com/julianstephens/pado/internal/reminder"
)

type RemindCmd struct {
	Once     bool          `help:"Check once and exit instead of running in the foreground."`
	Interval time.Duration `help:"How often to check the reminder time." default:"${remind_interval}"`
}

func (c *RemindCmd) Run(ctx *Context) error {
	loc, err := ctx.Config.Location()
	if err != nil {
		return err
	}
	r := reminder.New(ctx.Store, reminder.TerminalNotifier{Out: ctx.Out}, loc)

	if c.Once {
		sent, err := r.Tick(time.Now())
		if err != nil {
			return err
		}
		if !sent {
			ctx.println("No reminder due.")
		}
		return nil
	}

	release, err := reminder.AcquireLock(ctx.Config.ConfigDir())
	if err != nil {
		return err
	}
	defer func() {
		if err := release(); err != nil {
			logger.Warn("Failed to release reminder lock", "error", err)
		}
	}()

	interval := c.Interval
	if interval <= 0 {
		interval = reminder.DefaultInterval
	}

	settings := ctx.Store.GetSettings()
	if settings.NotificationEnabled {
		ctx.printf("Reminding daily at %s. Press Ctrl+C to stop.\n", settings.ReminderAt)
	} else {
		ctx.println("Notifications are disabled; waiting until they are enabled. Press Ctrl+C to stop.")
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := r.Run(sigCtx, interval); err != nil {
		return fmt.Errorf("reminder stopped: %w", err)
	}
	return nil
}

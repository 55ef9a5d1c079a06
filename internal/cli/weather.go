package cli

import (
	"github.com/julianstephens/pado/internal/models"
)

type WeatherCmd struct {
	Type string `arg:"" optional:"" help:"Weather to record for today (omit to list all)."`
}

func (c *WeatherCmd) Run(ctx *Context) error {
	if c.Type == "" {
		return c.list(ctx)
	}

	w, err := models.ParseWeather(c.Type)
	if err != nil {
		return err
	}
	record := ctx.Store.PickWeather(w)
	info := w.Info()
	ctx.printf("✓ %s 오늘의 날씨: %s (%s)\n", info.Emoji, info.Korean, record.Date)
	return nil
}

func (c *WeatherCmd) list(ctx *Context) error {
	selected, ok := ctx.Store.GetSelectedWeather()
	if !ok {
		selected = models.DefaultDisplayWeather
	}
	for _, info := range models.Weathers {
		marker := " "
		if info.ID == selected {
			marker = "*"
		}
		ctx.printf("%s %s  %-10s %-6s %s\n", marker, info.Emoji, info.ID, info.Korean, info.Emotion)
	}
	return nil
}

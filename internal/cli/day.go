package cli

import "fmt"

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	date, err := parseDate(ctx.Store, c.Date)
	if err != nil {
		return err
	}
	record, ok := ctx.Store.GetRecord(date)
	if !ok {
		return fmt.Errorf("no record found for %s", date)
	}
	ctx.printf("%s", formatRecord(record))
	return nil
}

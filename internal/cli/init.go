package cli

import "fmt"

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	backend := ctx.Store.Backend()
	if err := backend.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	ctx.printf("Initialized pado storage at: %s\n", backend.Location())
	return nil
}

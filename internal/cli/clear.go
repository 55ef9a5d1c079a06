package cli

type ClearCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *ClearCmd) Run(ctx *Context) error {
	if !c.Yes {
		ctx.println("⚠️  기록을 초기화할까요?")
		ctx.println("모든 일기와 심호흡 기록이 삭제되며 복구할 수 없어요.")
		ok, err := ctx.confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.println("Clear cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	ctx.Store.ClearAllRecords()
	ctx.println("✓ All records cleared. Settings were kept.")
	return nil
}

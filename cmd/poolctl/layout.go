package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/blockpool/pool"
)

func init() {
	rootCmd.AddCommand(newLayoutCmd())
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout [op]...",
		Short: "Show the block chain after replaying operations",
		Long: `The layout command applies the given operations (if any) and then
lists every block in the chain with its offset, size and status.

Example:
  poolctl layout --capacity 100
  poolctl layout --capacity 100 a10 a10 f0 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(args)
		},
	}
	return cmd
}

// layoutEntry is one block as reported by the layout command.
type layoutEntry struct {
	Offset    int      `json:"offset"`
	Ref       pool.Ref `json:"ref"`
	Size      int      `json:"size"`
	Allocated bool     `json:"allocated"`
}

func runLayout(args []string) error {
	ops, err := parseOps(args)
	if err != nil {
		return err
	}

	p, err := openPool()
	if err != nil {
		return err
	}
	defer p.Close()

	if _, err := applyOps(p, ops); err != nil {
		return err
	}

	var blocks []layoutEntry
	if err := p.Walk(func(b pool.Block) bool {
		blocks = append(blocks, layoutEntry{
			Offset:    b.Offset,
			Ref:       b.Ref(),
			Size:      b.Size,
			Allocated: b.Allocated,
		})
		return true
	}); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(blocks)
	}

	printInfo("\n%8s  %8s  %8s  %s\n", "OFFSET", "REF", "SIZE", "STATUS")
	for _, b := range blocks {
		status := "free"
		if b.Allocated {
			status = "allocated"
		}
		printInfo("%8d  %8d  %8s  %s\n", b.Offset, b.Ref, num(b.Size), status)
	}
	printInfo("\n%s blocks, %s bytes free\n", num(len(blocks)), num(p.TotFree()))
	return nil
}

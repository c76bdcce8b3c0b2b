package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/blockpool/pool"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <op>...",
		Short: "Replay operations and show per-step results and stats",
		Long: `The run command creates a pool, applies each operation in order and
prints what happened at every step, followed by capacity usage, allocator
counters and the result of the chain consistency check.

Example:
  poolctl run --capacity 100 a30 a20 a40 a10
  poolctl run a64 a64 f0 a32 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args)
		},
	}
	return cmd
}

// runReport is the JSON shape of the run command.
type runReport struct {
	Steps    []stepResult `json:"steps"`
	Stats    pool.Stats   `json:"stats"`
	MemCheck bool         `json:"mem_check"`
}

func runRun(args []string) error {
	ops, err := parseOps(args)
	if err != nil {
		return err
	}

	p, err := openPool()
	if err != nil {
		return err
	}
	defer p.Close()

	steps, applyErr := applyOps(p, ops)
	report := runReport{
		Steps:    steps,
		Stats:    p.Stats(),
		MemCheck: p.MemCheck(),
	}

	if jsonOut {
		if err := printJSON(report); err != nil {
			return err
		}
	} else {
		printSteps(steps)
		printStats(report.Stats)
		printInfo("\nMemCheck: %v\n", report.MemCheck)
	}

	if applyErr != nil {
		return applyErr
	}
	if !report.MemCheck {
		return fmt.Errorf("memcheck failed: %w", p.Verify())
	}
	return nil
}

func printSteps(steps []stepResult) {
	printInfo("\nSteps:\n")
	for i, s := range steps {
		switch {
		case s.Error != "":
			printInfo("  %3d  %-8s  FAIL  %s\n", i, s.Op, s.Error)
		case s.Size > 0:
			printInfo("  %3d  %-8s  ok    ref=%d size=%s\n", i, s.Op, s.Ref, num(s.Size))
		case s.Ref != 0:
			printInfo("  %3d  %-8s  ok    ref=%d\n", i, s.Op, s.Ref)
		default:
			printInfo("  %3d  %-8s  ok\n", i, s.Op)
		}
	}
}

func printStats(s pool.Stats) {
	printInfo("\nPool:\n")
	printInfo("  Capacity:     %s bytes\n", num(s.Capacity))
	printInfo("  Blocks:       %s (%s allocated, %s free)\n",
		num(s.Blocks), num(s.AllocatedBlocks), num(s.FreeBlocks))
	printInfo("  Allocated:    %s bytes\n", num(s.TotalAllocated))
	printInfo("  Free:         %s bytes\n", num(s.TotalFree))
	printInfo("  Largest free: %s bytes\n", num(s.LargestFree))
	printInfo("  Headers:      %s bytes\n", num(s.Blocks*pool.HeaderSize))

	printInfo("\nCounters:\n")
	printInfo("  Alloc calls:    %s (%s failed)\n", num(s.AllocCalls), num(s.AllocFailures))
	printInfo("  Splits:         %s\n", num(s.Splits))
	printInfo("  Absorbed tails: %s\n", num(s.AbsorbedTails))
	printInfo("  Coalesces:      %s\n", num(s.Coalesces))
	printInfo("  Free calls:     %s\n", num(s.FreeCalls))
}

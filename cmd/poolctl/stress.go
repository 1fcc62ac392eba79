package main

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/joshuapare/blockpool/pool"
)

func init() {
	rootCmd.AddCommand(newStressCmd())
}

type stressFlags struct {
	blockSize  int
	blockCount int
	alignment  int
	workers    int
	iters      int
}

func newStressCmd() *cobra.Command {
	flags := stressFlags{}
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Hammer one shared pool from many goroutines",
		Long: `The stress command runs workers goroutines against one shared pool, each
performing iters allocate/write/release cycles. Demand above the block count is
expected to produce exhaustion failures; any other failure, or an inexact free
count at the end, terminates with an error.

Example:
  poolctl stress --workers 8 --iters 2000
  poolctl stress --blocks 4 --workers 16 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress(flags)
		},
	}
	cmd.Flags().IntVar(&flags.blockSize, "block-size", 64, "Payload size of each block in bytes")
	cmd.Flags().IntVar(&flags.blockCount, "blocks", 16, "Number of blocks in the pool")
	cmd.Flags().IntVar(&flags.alignment, "align", 64, "Start-address alignment for every block")
	cmd.Flags().IntVar(&flags.workers, "workers", 8, "Concurrent goroutines")
	cmd.Flags().IntVar(&flags.iters, "iters", 2000, "Allocate/release cycles per goroutine")
	return cmd
}

// stressReport is the JSON shape for --json output.
type stressReport struct {
	Workers    int   `json:"workers"`
	Iters      int   `json:"iters"`
	Successes  int64 `json:"successes"`
	Exhausted  int64 `json:"exhausted"`
	FreeBlocks int   `json:"freeBlocks"`
	BlockCount int   `json:"blockCount"`
}

func runStress(flags stressFlags) error {
	if flags.workers <= 0 || flags.iters <= 0 {
		return fmt.Errorf("workers and iters must be > 0")
	}

	p, err := pool.New(flags.blockSize, flags.blockCount, flags.alignment)
	if err != nil {
		return fmt.Errorf("failed to construct pool: %w", err)
	}
	defer p.Close()

	printVerbose("Stressing pool: blocks=%d workers=%d iters=%d\n",
		flags.blockCount, flags.workers, flags.iters)

	start := make(chan struct{})
	errCh := make(chan error, flags.workers)
	var (
		wg        sync.WaitGroup
		successes atomic.Int64
		exhausted atomic.Int64
	)

	for w := 0; w < flags.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for it := 0; it < flags.iters; it++ {
				buf, allocErr := p.Alloc()
				if allocErr != nil {
					if errors.Is(allocErr, pool.ErrExhausted) {
						// Expected under contention; back off and retry.
						exhausted.Add(1)
						runtime.Gosched()
						continue
					}
					errCh <- allocErr
					return
				}
				successes.Add(1)
				for j := range buf {
					buf[j] = 0xA5
				}
				if freeErr := p.Free(buf); freeErr != nil {
					errCh <- freeErr
					return
				}
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)

	for workerErr := range errCh {
		return fmt.Errorf("worker failed: %w", workerErr)
	}

	free := p.FreeBlocks()
	if free != p.BlockCount() {
		return fmt.Errorf("conservation violated: %d of %d blocks free after stress",
			free, p.BlockCount())
	}
	if successes.Load() == 0 {
		return fmt.Errorf("no allocation succeeded across %d workers", flags.workers)
	}

	if jsonOut {
		return printJSON(stressReport{
			Workers:    flags.workers,
			Iters:      flags.iters,
			Successes:  successes.Load(),
			Exhausted:  exhausted.Load(),
			FreeBlocks: free,
			BlockCount: p.BlockCount(),
		})
	}

	printTitle("Stress Run")
	printField("Workers", "%d", flags.workers)
	printField("Iters", "%d per worker", flags.iters)
	printField("Successes", "%d", successes.Load())
	printField("Exhausted", "%d (expected under contention)", exhausted.Load())
	printField("Free blocks", "%d of %d", free, p.BlockCount())
	printInfo("\nOK\n")
	return nil
}

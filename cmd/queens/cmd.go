package queens

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Xabibax/choco-solver/pkg/cp"
	"github.com/Xabibax/choco-solver/pkg/cp/model"
	"github.com/Xabibax/choco-solver/pkg/cp/solver"
)

func NewQueensCommand() *cobra.Command {
	var (
		size      int
		timeLimit time.Duration
		learn     bool
		parallel  int
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "queens",
		Short: "Places n queens on an n x n board so none attacks another",
		RunE: func(cmd *cobra.Command, args []string) error {
			if size < 1 {
				return fmt.Errorf("board size must be positive, got %d", size)
			}
			return solve(cmd.Context(), size, timeLimit, learn, parallel, verbose)
		},
	}

	cmd.Flags().IntVarP(&size, "size", "n", 8, "board size")
	cmd.Flags().DurationVar(&timeLimit, "time-limit", 0, "stop after this much wall-clock time (0 means no limit)")
	cmd.Flags().BoolVar(&learn, "learn", false, "record failed decision sequences as nogoods")
	cmd.Flags().IntVar(&parallel, "parallel", 1, "number of concurrent searches")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "trace decisions and backtracks")

	return cmd
}

func solve(ctx context.Context, size int, timeLimit time.Duration, learn bool, parallel int, verbose bool) error {
	var opts []solver.Option
	if timeLimit > 0 {
		opts = append(opts, solver.WithTimeLimit(timeLimit))
	}
	if learn {
		opts = append(opts, solver.WithLearning())
	}
	if verbose {
		opts = append(opts, solver.WithMonitor(cp.LoggingMonitor{Writer: os.Stderr}))
	}

	var (
		sol cp.Solution
		err error
	)
	if parallel > 1 {
		sol, err = solver.Portfolio(ctx, parallel, func(seed int) (*model.Model, []cp.Propagator, []solver.Option) {
			m, props := Build(size)
			return m, props, opts
		})
	} else {
		m, props := Build(size)
		sol, err = solver.New(m, props, opts...).Solve(ctx)
	}

	switch {
	case err == nil:
		fmt.Print(Board(size, sol))
	case errors.Is(err, solver.ErrNoSolution):
		fmt.Printf("no solution for %d queens\n", size)
	case errors.Is(err, solver.ErrIncomplete):
		fmt.Println("search stopped before a solution was found")
	default:
		return err
	}
	return nil
}

package root

import (
	"github.com/spf13/cobra"

	"github.com/Xabibax/choco-solver/cmd/queens"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "choco",
		Short: "A backtracking constraint solver over trailed state",
		Long: `A finite-domain constraint solver built on a trailed, backtrackable
store: decisions open worlds, propagation narrows domains, contradictions
unwind to the most recent open choice.`,
	}

	// add sub-commands
	rootCmd.AddCommand(queens.NewQueensCommand())

	return rootCmd
}

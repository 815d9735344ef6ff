package commands

import "github.com/spf13/cobra"

// NewRootCmd assembles the oavi command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "oavi",
		Short: "Approximate vanishing ideals by conditional gradients",
		Long: `oavi learns the polynomial relations (approximately) satisfied by a point
set and turns them into features: every generator g of the ideal maps a
point x to |g(x)|.

Available commands:
  fit      - fit training points and write the feature transform
  version  - show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(NewFitCmd(), NewVersionCmd())

	return root
}

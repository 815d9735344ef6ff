// Command oavi fits approximate vanishing ideals to CSV point sets and
// writes the resulting feature transform.
//
// Examples:
//
//	oavi fit --train train.csv --test test.csv --out features.csv
//	oavi fit --train train.csv --oracle abm --tau 10 --summary yaml
//	OAVI_PSI=0.01 oavi fit --train train.csv --metrics-out fit.prom
//	oavi version
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/oavi/cmd/oavi/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/attachlink/cmd/attachlink"
	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/arthur-debert/attachlink/pkg/ui/output/styles"
)

func main() {
	rootCmd := attachlink.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))

		if errors.IsConfigError(err) {
			fmt.Fprintln(os.Stderr, styles.GetStyle("Muted").Render("See 'attachlink help configuration'."))
		}
		os.Exit(1)
	}
}

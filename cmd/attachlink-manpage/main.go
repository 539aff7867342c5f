package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/attachlink/cmd/attachlink"
	"github.com/spf13/cobra/doc"
)

func main() {
	rootCmd := attachlink.NewRootCmd()

	if err := doc.GenMan(rootCmd, attachlink.ManHeader(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}

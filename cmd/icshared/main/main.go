package main

import (
	"fmt"
	"os"

	"github.com/icarus-vfx/icshared/cmd/icshared"
)

func main() {
	rootCmd := icshared.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, icshared.FormatError(err))
		os.Exit(1)
	}
}

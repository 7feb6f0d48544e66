package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/packup/cmd/packup"
	"github.com/arthur-debert/packup/pkg/ui/output/styles"
)

func main() {
	rootCmd := packup.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}

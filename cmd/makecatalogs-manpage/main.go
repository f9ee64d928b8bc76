package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/makecatalogs/internal/cli"
	"github.com/arthur-debert/makecatalogs/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "MAKECATALOGS",
		Section: "8",
		Source:  "makecatalogs " + version.Version,
		Manual:  "makecatalogs manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}

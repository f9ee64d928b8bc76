package main

import (
	"os"

	"github.com/arthur-debert/makecatalogs/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewRootCmd()))
}

// Package main is the entry point for the mesh CLI binary.
package main

import (
	"os"

	cli "datamesh/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}

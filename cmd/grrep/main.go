// Package main provides the entry point for the grrep CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/grrep/cmd/grrep/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

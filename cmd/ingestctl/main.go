// Package main is the entry point for the ingestctl binary.
package main

import (
	"os"

	"github.com/Thiru152003/s3-lamda/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

package main

import (
	"os"

	"github.com/evmap/evmap/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

package main

import (
	"os"

	"brew-backup/src/cli"
)

func main() {
	os.Exit(cli.Execute())
}

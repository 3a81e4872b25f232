package main

import (
	"os"

	"github.com/peopledoc/go-docusign/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}

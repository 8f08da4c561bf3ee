package main

import (
	"os"

	"github.com/abhisek/tbscreen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

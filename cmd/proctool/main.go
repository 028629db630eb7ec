package main

import (
	"os"

	"github.com/paveg/proctool/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

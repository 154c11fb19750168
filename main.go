package main

import (
	"errors"
	"os"

	"github.com/tvph1996/Kuiche/cmd"
	"github.com/tvph1996/Kuiche/internal/worker"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, worker.ErrInputMissing) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/Simplici0/padaria/internal/logging"
)

func main() {
	defer logging.Sync()

	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

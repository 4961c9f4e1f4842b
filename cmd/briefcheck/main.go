package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/briefcheck/internal/cli"
	"github.com/ppiankov/briefcheck/internal/validate"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, validate.ErrInvalidBrief) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

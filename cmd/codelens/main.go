package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	err := newRootCmd().Execute()

	switch {
	case err == nil:
	case errors.Is(err, errDiagnosticsFound):
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

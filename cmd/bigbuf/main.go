// Command bigbuf is the entry point of the digit-buffer application.
// It parses the command line, then dispatches to one-shot, interactive REPL,
// or HTTP server mode.
package main

import (
	"context"
	"os"

	"github.com/agbru/bigbuf/internal/app"
	apperrors "github.com/agbru/bigbuf/internal/errors"
)

func main() {
	// Version flag short-circuits normal parsing so it works in any position.
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		os.Exit(apperrors.ExitSuccess)
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}

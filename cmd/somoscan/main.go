// Command somoscan scans the Somos-s recurrences for s = 1..30 in IEEE-754
// double precision and reports every step of each sequence until numeric
// breakdown, fraction repetition, or the iteration bound.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agbru/somoscan/internal/app"
	apperrors "github.com/agbru/somoscan/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		fmt.Println(app.BuildInfo())
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

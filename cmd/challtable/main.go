package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jgivc/challtable/internal/app"
	"github.com/jgivc/challtable/internal/config"
	"github.com/spf13/afero"
)

func main() {
	os.Exit(run(os.Args[1:], os.LookupEnv, afero.NewOsFs(), os.Stderr))
}

// run returns the process exit code. Errors are reported on stderr and only
// turn into exit code 1 in strict mode.
func run(args []string, lookup config.LookupFunc, fs afero.Fs, stderr io.Writer) int {
	flags := config.NewFlags("challtable", flag.ContinueOnError)
	flags.SetOutput(stderr)

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	cfg, err := config.Load(fs, flags, lookup)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %s\n", err)

		return exitCode(flags.Strict(lookup))
	}

	a := app.New(cfg, fs, stderr)
	if err := a.Run(context.Background()); err != nil {
		fmt.Fprintf(stderr, "Error writing to %s: %s\n", a.ReportFile(), err)

		return exitCode(cfg.Strict)
	}

	return 0
}

func exitCode(strict bool) int {
	if strict {
		return 1
	}

	return 0
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/hokaccha/go-prettyjson"
	"golang.org/x/sync/errgroup"

	"github.com/looplj/jsonfixer/conf"
	"github.com/looplj/jsonfixer/internal/objects"
	"github.com/looplj/jsonfixer/internal/repair"
)

const maxConcurrentFiles = 8

type repairOptions struct {
	write bool
	files []string
}

func parseRepairArgs(args []string) repairOptions {
	var opts repairOptions

	for _, arg := range args {
		switch arg {
		case "--write", "-w":
			opts.write = true
		default:
			opts.files = append(opts.files, arg)
		}
	}

	return opts
}

func handleRepairCommand(args []string) int {
	config, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	repairer, err := repair.New(config.Repair)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid repair config: %v\n", err)
		return 1
	}

	return runRepair(context.Background(), repairer, parseRepairArgs(args), os.Stdin, os.Stdout, os.Stderr)
}

// fileResult keeps per-file outcomes so output order matches argument order.
// err is set when the file could not be read or written back.
type fileResult struct {
	name    string
	outcome repair.Outcome
	err     error
}

func runRepair(ctx context.Context, repairer *repair.Repairer, opts repairOptions, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(opts.files) == 0 {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read stdin: %v\n", err)
			return 1
		}

		return report(stdout, stderr, []fileResult{{name: "-", outcome: repairer.Repair(string(raw))}}, false, false)
	}

	results := make([]fileResult, len(opts.files))

	var g errgroup.Group
	g.SetLimit(maxConcurrentFiles)

	// A failing file never cancels the others; errors are collected per file.
	for i, name := range opts.files {
		g.Go(func() error {
			results[i] = repairFile(ctx, repairer, name, opts.write)
			return nil
		})
	}

	_ = g.Wait()

	var (
		merr *multierror.Error
		done []fileResult
	)

	for _, result := range results {
		if result.err != nil {
			merr = multierror.Append(merr, result.err)
			continue
		}

		done = append(done, result)
	}

	code := report(stdout, stderr, done, opts.write, len(opts.files) > 1)

	if err := merr.ErrorOrNil(); err != nil {
		fmt.Fprint(stderr, err)
		return 1
	}

	return code
}

func repairFile(ctx context.Context, repairer *repair.Repairer, name string, write bool) fileResult {
	if err := ctx.Err(); err != nil {
		return fileResult{name: name, err: fmt.Errorf("%s: %w", name, err)}
	}

	raw, err := os.ReadFile(name)
	if err != nil {
		return fileResult{name: name, err: fmt.Errorf("read %s: %w", name, err)}
	}

	outcome := repairer.Repair(string(raw))

	if write && outcome.Kind == repair.KindRepaired {
		if err := writeInPlace(name, outcome.Text); err != nil {
			return fileResult{name: name, outcome: outcome, err: err}
		}
	}

	return fileResult{name: name, outcome: outcome}
}

func writeInPlace(name, text string) error {
	info, err := os.Stat(name)
	if err != nil {
		return fmt.Errorf("stat %s: %w", name, err)
	}

	if err := os.WriteFile(name, []byte(text), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	return nil
}

// report prints successes to stdout and failure bodies to stderr. multi prefixes each
// repaired text with its file name.
func report(stdout, stderr io.Writer, results []fileResult, written, multi bool) int {
	code := 0

	for _, result := range results {
		outcome := result.outcome

		if outcome.Kind == repair.KindFailed {
			code = 1

			body, err := prettyjson.Marshal(objects.RepairFailure{
				Error:         objects.RepairFailureMessage,
				OriginalInput: outcome.OriginalInput,
				AttemptedFix:  outcome.AttemptedFix,
				Details:       outcome.Details,
			})
			if err != nil {
				fmt.Fprintf(stderr, "%s: %s\n", result.name, outcome.Details)
				continue
			}

			fmt.Fprintf(stderr, "%s: %s\n", result.name, body)

			continue
		}

		switch {
		case written:
			fmt.Fprintf(stdout, "%s: %s\n", result.name, outcome.Kind)
		case multi:
			fmt.Fprintf(stdout, "==> %s (%s) <==\n%s\n", result.name, outcome.Kind, outcome.Text)
		default:
			fmt.Fprintln(stdout, outcome.Text)
		}
	}

	return code
}

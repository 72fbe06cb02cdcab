package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yacobolo/seess"
	"github.com/yacobolo/seess/internal/caveat"
	"github.com/yacobolo/seess/internal/report"
	"github.com/yacobolo/seess/internal/source"
	"golang.org/x/sync/errgroup"
)

// errCaveatsFound makes strict mode exit non-zero after the report is written
var errCaveatsFound = errors.New("caveats found")

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files or globs...]",
	Short: "Count selectors, rules and properties in CSS files",
	Long: `Count selectors, rule blocks and property declarations in CSS files.
Arguments may be files, doublestar globs ("web/**/*.css") or "-" for stdin.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringSlice("paths", nil, "Glob patterns for CSS files (default **/*.css)")
	f.String("format", "text", "Output format: text|json|markdown")
	f.Bool("caveats", false, "Report constructs that make the counts inaccurate")
	f.Bool("strict", false, "Exit 1 when any caveat is found (CI mode)")
	f.Int("jobs", 0, "Files analyzed concurrently (default GOMAXPROCS)")
	f.Bool("include-minified", false, "Analyze *.min.css files matched by globs")
	f.String("ignore-file", ".gitignore", "Ignore file applied to glob matches")
	f.Bool("print-lines", true, "Show source lines with caveats")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	config := buildAnalyzeConfig(args)

	discoverer := source.NewDiscoverer(config.IgnoreFile, config.IncludeMinified)
	files, stats, err := discoverer.Discover(config.Paths)
	if err != nil {
		return fmt.Errorf("discovering inputs: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no CSS files matched %s", strings.Join(config.Paths, ", "))
	}

	if config.Verbose && !config.Quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Analyzing %d files (skipped %d minified/ignored files)\n",
			stats.Selected, stats.Skipped)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	withCaveats := config.Caveats || config.Strict
	results, err := analyzeFiles(ctx, files, cmd.InOrStdin(), config.Jobs, withCaveats)
	if err != nil {
		return err
	}

	summary := report.NewSummary(results)

	if !config.Quiet {
		opts := report.Options{
			UseColors:   config.UseColors,
			ShowCaveats: config.Caveats,
			PrintLines:  config.PrintLines,
		}
		if err := report.Write(cmd.OutOrStdout(), summary, report.DetermineFormat(config.Format), opts); err != nil {
			return err
		}
	}

	if config.Strict && summary.CaveatCount() > 0 {
		if !config.Quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "\nStrict mode: %d caveat(s) found\n", summary.CaveatCount())
		}
		return errCaveatsFound
	}

	return nil
}

// analyzeFiles reads and analyzes files with at most jobs running at once.
// Results keep the order of files.
func analyzeFiles(ctx context.Context, files []string, stdin io.Reader, jobs int, withCaveats bool) ([]report.FileResult, error) {
	results := make([]report.FileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			content, err := source.ReadFile(path, stdin)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			result := report.FileResult{
				Path:     source.RelativePath(path),
				Analysis: seess.AnalyzeCSS(content),
			}
			if withCaveats {
				result.Caveats = caveat.Inspect(content)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/spf13/cobra"

	sceneio "github.com/matzehuels/creativeforge/pkg/io"
)

// errNotCompliant is returned by `check --strict` for a non-compliant scene.
var errNotCompliant = errors.New("creative is not compliant")

// IsNotCompliant reports whether err came from a strict check that failed.
func IsNotCompliant(err error) bool {
	return errors.Is(err, errNotCompliant)
}

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	json   bool // print the report as JSON
	strict bool // fail when the scene has violations
}

func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check <scene>",
		Short: "Score a scene against the brand guidelines",
		Long: `Score a scene file (.json, .yaml) against the brand guidelines.

The report lists hard violations, soft warnings and recommendations. The
score starts at 100 and loses 15 points per violation and 5 per warning.
A scene is compliant when it has no violations.`,
		Example: `  # Print a report
  creativeforge check summer-sale.json

  # Fail in CI when the creative breaks a hard rule
  creativeforge check --strict summer-sale.json

  # Machine-readable output
  creativeforge check --json summer-sale.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit non-zero when the scene is not compliant")

	return cmd
}

func (c *CLI) runCheck(ctx context.Context, w io.Writer, path string, opts checkOpts) error {
	s, err := sceneio.ImportFile(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	res, err := runner.Evaluate(ctx, s, c.cfg.Guidelines)
	if err != nil {
		return err
	}
	prog.done("Evaluated scene", "score", res.Report.Score, "cached", res.CacheHit)

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Report); err != nil {
			return err
		}
	} else {
		printReport(w, path, res, len(s.Elements))
	}

	if opts.strict && !res.Report.IsCompliant {
		if !opts.json {
			printWarning(w, "%d violation(s) must be fixed", len(res.Report.Violations))
		}
		return errNotCompliant
	}
	return nil
}

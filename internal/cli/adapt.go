package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	sceneio "github.com/matzehuels/creativeforge/pkg/io"
	"github.com/matzehuels/creativeforge/pkg/pipeline"
)

// adaptOpts holds the command-line flags for the adapt command.
type adaptOpts struct {
	formats     string // comma-separated format keys, empty for all
	output      string // output directory
	encoding    string // "json" or "yaml", empty to match the input
	refresh     bool   // bypass cached variants
	concurrency int    // parallel adaptations
}

func (c *CLI) adaptCommand() *cobra.Command {
	var opts adaptOpts

	cmd := &cobra.Command{
		Use:   "adapt <scene>",
		Short: "Adapt a scene to social media formats",
		Long: `Adapt a scene to one or more export formats.

Each variant gets the target aspect ratio: the canvas keeps its width when
the target is wider and its height when the target is taller, and product
images are recentred on the new canvas. Every variant is scored again and
written next to the others as <name>-<format>.<ext>.`,
		Example: `  # All registered formats
  creativeforge adapt summer-sale.json -o out/

  # Selected formats, written as YAML
  creativeforge adapt summer-sale.json --format instagram_story,linkedin --encoding yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAdapt(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "comma-separated format keys (default: all)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", "output directory")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "", "output encoding: json, yaml (default: same as input)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute cached variants")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", pipeline.DefaultConcurrency, "formats adapted in parallel")

	return cmd
}

func (c *CLI) runAdapt(ctx context.Context, w, status io.Writer, path string, opts adaptOpts) error {
	s, err := sceneio.ImportFile(path)
	if err != nil {
		return err
	}
	enc, err := outputEncoding(path, opts.encoding)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	spinner := newSpinner(ctx, status, "Adapting scene...")
	spinner.Start()
	variants, err := runner.Export(ctx, s, pipeline.Options{
		Formats:     parseFormats(opts.formats),
		Guidelines:  c.cfg.Guidelines,
		Refresh:     opts.refresh,
		Concurrency: opts.concurrency,
		Logger:      logger,
	})
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
		} else {
			spinner.StopWithError("Adaptation failed")
		}
		return err
	}
	spinner.Stop()

	paths := make([]string, len(variants))
	for i, v := range variants {
		paths[i] = filepath.Join(opts.output, variantFileName(path, v.Format.Key, enc))
		if err := sceneio.ExportFile(v.Scene, paths[i]); err != nil {
			return fmt.Errorf("write %s: %w", v.Format.Key, err)
		}
	}
	prog.done("Adapted scene", "formats", len(variants))

	printSuccess(w, "Adapted %s to %d format(s)", filepath.Base(path), len(variants))
	printVariants(w, variants, paths)
	return nil
}

// outputEncoding resolves the --encoding flag against the input path.
func outputEncoding(input, flag string) (sceneio.Encoding, error) {
	if flag == "" {
		return sceneio.EncodingFor(input)
	}
	return sceneio.EncodingFor("scene." + strings.ToLower(flag))
}

// variantFileName returns "<base>-<key>.<ext>" for an input path.
func variantFileName(input, key string, enc sceneio.Encoding) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return fmt.Sprintf("%s-%s.%s", base, key, enc)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	primio "github.com/matzehuels/primgeom/pkg/io"
	"github.com/matzehuels/primgeom/pkg/pipeline"
)

type batchOptions struct {
	output   string
	workers  int
	failFast bool
	refresh  bool
}

// batchCommand runs a file of requests in parallel.
func (c *CLI) batchCommand() *cobra.Command {
	var opts batchOptions

	cmd := &cobra.Command{
		Use:   "batch <requests.json>",
		Short: "Build a file of node and arc requests in parallel",
		Long: `Build a file of node and arc requests in parallel.

The file holds {"options": {...}, "requests": [...]} or a bare request array.
Request coordinates are grid units. Results are cached by technology
fingerprint and request parameters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			t, err := c.technology()
			if err != nil {
				return err
			}
			bf, err := pipeline.LoadBatch(args[0])
			if err != nil {
				return err
			}

			popts := bf.Options
			if cmd.Flags().Changed("workers") {
				popts.Workers = opts.workers
			}
			popts.FailFast = popts.FailFast || opts.failFast
			popts.Refresh = popts.Refresh || opts.refresh

			runner, err := c.newRunner(ctx, t)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(logger)
			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Building %d requests...", len(bf.Requests)))
			spinner.Start()
			out, err := runner.Batch(ctx, bf.Requests, popts)
			spinner.Stop()
			if err != nil {
				printError("Batch failed")
				return err
			}
			prog.done(fmt.Sprintf("Built %d requests", len(bf.Requests)))

			cached := 0
			for _, res := range out.Results {
				if res.CacheHit {
					cached++
				}
				if res.Err != nil {
					printWarning("%s %s: %v", res.Request.Kind, res.Request.Name, res.Err)
				}
			}
			printSuccess("Batch %s: %d ok, %d failed", out.ID[:8], len(out.Results)-out.Failed, out.Failed)
			printDetail("%d served from cache", cached)

			output := opts.output
			if output == "" {
				output = "shapes.json"
			}
			if err := primio.ExportJSON(out.Document(t, runner.Fingerprint()), output); err != nil {
				return err
			}
			printFile(output)

			if out.Failed > 0 {
				return fmt.Errorf("%d of %d requests failed", out.Failed, len(out.Results))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (default: shapes.json)")
	f.IntVarP(&opts.workers, "workers", "w", pipeline.DefaultWorkers, "concurrent requests")
	f.BoolVar(&opts.failFast, "fail-fast", false, "stop at the first failing request")
	f.BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

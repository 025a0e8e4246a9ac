package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/portalsync/pkg/buildinfo"
	"github.com/matzehuels/portalsync/pkg/config"
	"github.com/matzehuels/portalsync/pkg/errors"
	"github.com/matzehuels/portalsync/pkg/observability"
)

// rootOptions holds the flags of the root command.
type rootOptions struct {
	config string
	root   string
	output string
}

// RootCommand creates the portalsync command.
//
// Without arguments every record under the root directory is reconciled and
// the aggregate index is written. With one argument only that record file
// is reconciled and the index is left alone.
func (c *CLI) RootCommand() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   appName + " [record-file]",
		Short: "Portalsync reconciles the plugin catalog with Maven repositories",
		Long: `Portalsync reads every plugin record in the catalog, lists the versions its
Maven repository publishes, adds releases that are missing along with their
date and Grails compatibility range, and writes the aggregate plugin index.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.config)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("root") {
				cfg.Root = opts.root
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = opts.output
			}
			if len(args) == 1 {
				return c.runFile(cmd.Context(), cfg, args[0])
			}
			return c.runAll(cmd.Context(), cfg)
		},
	}

	cmd.SetVersionTemplate(buildinfo.Template())
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (default "+config.DefaultFile+" if present)")
	cmd.Flags().StringVar(&opts.root, "root", "", "record tree root (default \"plugins\")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "aggregate index path (default \"build/plugins.json\")")

	return cmd
}

// runAll reconciles the whole tree and writes the index.
func (c *CLI) runAll(ctx context.Context, cfg config.Config) error {
	root, err := absPath(cfg.Root)
	if err != nil {
		return err
	}
	output, err := absPath(cfg.Output)
	if err != nil {
		return err
	}

	ctx, comp, sum := c.begin(ctx, cfg)
	defer observability.Reset()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	entries, err := comp.builder.Build(ctx, root)
	if err != nil {
		if errors.Is(err, errors.ErrCodeFileNotFound) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "no record tree (set --root or root in %s)", config.DefaultFile)
		}
		return err
	}
	if err := comp.builder.Write(entries, output); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Reconciled %d plugins", len(entries)))

	printSuccess("Wrote %d plugins", len(entries))
	printFile(output)
	sum.print()
	warnTripped(comp.http.TrippedHosts())
	return nil
}

// runFile reconciles a single record.
func (c *CLI) runFile(ctx context.Context, cfg config.Config, file string) error {
	path, err := absPath(file)
	if err != nil {
		return err
	}

	ctx, comp, sum := c.begin(ctx, cfg)
	defer observability.Reset()

	rec, err := comp.builder.ReconcileFile(ctx, path)
	if err != nil {
		return err
	}
	if rec == nil {
		printWarning("Skipped %s", file)
		return nil
	}
	printSuccess("Reconciled %s", StyleHighlight.Render(rec.Coords))
	printFile(path)
	sum.print()
	warnTripped(comp.http.TrippedHosts())
	return nil
}

// begin tags the logger with a run id, installs the summary hooks and
// builds the run components.
func (c *CLI) begin(ctx context.Context, cfg config.Config) (context.Context, *components, *summary) {
	logger := c.Logger.With("run", uuid.NewString()[:8])
	logger.Debug("configuration", "root", cfg.Root, "extension", cfg.Extension, "output", cfg.Output,
		"connectTimeout", cfg.HTTP.ConnectTimeout, "readTimeout", cfg.HTTP.ReadTimeout)

	sum := &summary{}
	observability.SetSyncHooks(sum)
	return withLogger(ctx, logger), newComponents(cfg, logger), sum
}

func warnTripped(hosts []string) {
	for _, h := range hosts {
		printWarning("Host %s stopped responding; its remaining lookups were skipped", h)
	}
}

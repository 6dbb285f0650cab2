package commands

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dersalik/fibscope/internal/analysis"
	"github.com/dersalik/fibscope/internal/config"
	"github.com/dersalik/fibscope/internal/history"
	"github.com/dersalik/fibscope/internal/importer"
	"github.com/dersalik/fibscope/internal/logger"
	"github.com/dersalik/fibscope/internal/model"
	"github.com/dersalik/fibscope/internal/parse"
	"github.com/dersalik/fibscope/internal/report"
)

type analyzeFlags struct {
	dir            string
	bank           string
	ignoreInternal bool
	from           string
	to             string
	format         string
	archive        bool
}

func newAnalyzeCommand(s *settings) *cobra.Command {
	var f analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Analyze transaction exports",
		Long: "Analyze one or more FIB CSV exports. Without file arguments every CSV in the\n" +
			"import directory is analyzed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *s.cfg
			if err := f.apply(cmd, &cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), &cfg, f.bank, args)
		},
	}

	cmd.Flags().StringVar(&f.dir, "dir", "", "import directory scanned when no files are given")
	cmd.Flags().StringVar(&f.bank, "bank", "fib", "export format")
	cmd.Flags().BoolVar(&f.ignoreInternal, "ignore-internal", false, "exclude money box transfers")
	cmd.Flags().StringVar(&f.from, "from", "", "first date to include (dd/MM/yyyy)")
	cmd.Flags().StringVar(&f.to, "to", "", "last date to include (dd/MM/yyyy)")
	cmd.Flags().StringVar(&f.format, "format", "", "report format (text, json)")
	cmd.Flags().BoolVar(&f.archive, "archive", false, "move analyzed files to the processed directory")

	return cmd
}

// apply overrides cfg with the flags that were set explicitly.
func (f *analyzeFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("dir") {
		cfg.Import.Dir = f.dir
	}
	if changed("ignore-internal") {
		cfg.Analysis.IgnoreInternal = f.ignoreInternal
	}
	if changed("from") {
		if _, err := parse.Date(f.from); err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		cfg.Analysis.From = f.from
	}
	if changed("to") {
		if _, err := parse.Date(f.to); err != nil {
			return fmt.Errorf("--to: %w", err)
		}
		cfg.Analysis.To = f.to
	}
	if changed("format") {
		cfg.Report.Format = f.format
	}
	if changed("archive") {
		cfg.Import.Archive = f.archive
	}
	return nil
}

func runAnalyze(ctx context.Context, out io.Writer, cfg *config.Config, bank string, paths []string) error {
	log := logger.FromContext(ctx)

	parser := importer.DefaultRegistry().Get(bank)
	if parser == nil {
		return fmt.Errorf("unknown export format %q", bank)
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	var scanned []importer.FileInfo
	if len(paths) == 0 {
		scanned, err = importer.Scan(cfg.Import.Dir)
		if err != nil {
			return err
		}
		if len(scanned) == 0 {
			return fmt.Errorf("no CSV exports found in %s", cfg.Import.Dir)
		}
		for _, fi := range scanned {
			paths = append(paths, fi.Path)
		}
	}

	txns, err := decodeAll(ctx, parser, paths)
	if err != nil {
		return err
	}

	result, err := analysis.AnalyzeContext(ctx, txns, opts)
	if err != nil {
		log.Error().Err(err).Msg("analysis failed")
		return fmt.Errorf("analyzing transactions: %w", err)
	}
	log.Info().
		Int("total", result.TotalTransactionCount).
		Int("filtered", result.FilteredTransactionCount).
		Int("currencies", len(result.Currencies)).
		Msg("analysis completed")

	ropts := report.Options{
		TopTypes:          cfg.Report.TopTypes,
		TopCounterparties: cfg.Report.TopCounterparties,
		Largest:           cfg.Report.Largest,
		Recent:            cfg.Report.Recent,
	}
	if err := report.Write(out, cfg.Report.Format, result, ropts); err != nil {
		return err
	}

	if cfg.Log.History != "" {
		recordRun(ctx, cfg, paths, result)
	}

	if !cfg.Import.Archive {
		return nil
	}
	if len(scanned) == 0 {
		log.Warn().Msg("--archive only applies to files found in the import directory")
		return nil
	}
	for _, fi := range scanned {
		if err := importer.MarkProcessed(cfg.Import.Dir, fi.Name); err != nil {
			return err
		}
		log.Debug().Str("file", fi.Name).Msg("archived")
	}
	return nil
}

// recordRun appends the run to the history file. Failures are logged only;
// the report has already been written.
func recordRun(ctx context.Context, cfg *config.Config, paths []string, result *analysis.Result) {
	entry := history.Entry{
		Timestamp: time.Now(),
		Files:     paths,
		Total:     result.TotalTransactionCount,
		Analyzed:  result.FilteredTransactionCount,
		Format:    cfg.Report.Format,
	}
	for _, a := range result.Ordered() {
		entry.Currencies = append(entry.Currencies, a.Currency.Code())
	}
	if err := history.Append(cfg.Log.History, entry); err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Str("file", cfg.Log.History).Msg("recording analysis history failed")
	}
}

// decodeAll decodes every path concurrently and concatenates the results in
// argument order. The first failure cancels the rest.
func decodeAll(ctx context.Context, parser importer.Parser, paths []string) ([]model.Transaction, error) {
	log := logger.FromContext(ctx)

	results := make([][]model.Transaction, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			flog := logger.WithFields(log, map[string]any{
				"file":   path,
				"format": parser.Format(),
			})
			flog.Debug().Msg("decoding")

			txns, err := importer.ParseFile(parser, path)
			if err != nil {
				flog.Error().Err(err).Msg("decoding failed")
				return err
			}
			flog.Debug().Int("transactions", len(txns)).Msg("decoded")
			results[i] = txns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := slices.Concat(results...)
	if all == nil {
		all = []model.Transaction{}
	}
	return all, nil
}

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dersalik/fibscope/internal/importer"
	"github.com/dersalik/fibscope/internal/logger"
	"github.com/dersalik/fibscope/internal/model"
)

func newExportCommand() *cobra.Command {
	var (
		output string
		bank   string
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Rewrite an export in canonical FIB layout",
		Long: "Decode an export and write it back with normalized amounts, dates and\n" +
			"times. Amounts keep every decimal place and times keep days and fractional\n" +
			"seconds, so the output decodes to the same transactions. Output goes to\n" +
			"stdout unless -o is given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.FromContext(cmd.Context())

			parser := importer.DefaultRegistry().Get(bank)
			if parser == nil {
				return fmt.Errorf("unknown export format %q", bank)
			}

			txns, err := importer.ParseFile(parser, args[0])
			if err != nil {
				return err
			}

			if output == "" {
				return writeTo(cmd.OutOrStdout(), txns)
			}
			if err := writeExport(output, txns); err != nil {
				return err
			}
			log.Info().Str("file", output).Int("transactions", len(txns)).Msg("export written")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&bank, "bank", "fib", "export format")

	return cmd
}

func writeExport(path string, txns []model.Transaction) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	return writeTo(f, txns)
}

func writeTo(w io.Writer, txns []model.Transaction) error {
	if err := importer.WriteTransactions(w, txns); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

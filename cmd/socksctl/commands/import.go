package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appsocks "github.com/jhoicas/socks-api/internal/application/socks"
	"github.com/jhoicas/socks-api/internal/infrastructure/csvimport"
)

var (
	importDelimiter string
	importCharset   string
	importHeader    bool
	importMode      string
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Carga masiva de entradas desde CSV (color,algodón,cantidad)",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importDelimiter, "delimiter", "", "delimitador de campos (por defecto SOCKS_IMPORT_DELIMITER)")
	importCmd.Flags().StringVar(&importCharset, "charset", "", "juego de caracteres del archivo (por defecto SOCKS_IMPORT_CHARSET)")
	importCmd.Flags().BoolVar(&importHeader, "header", false, "la primera fila es cabecera")
	importCmd.Flags().StringVar(&importMode, "mode", "", "atomic|best_effort (por defecto SOCKS_IMPORT_MODE)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	mode, err := appsocks.ParseImportMode(importMode)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	deps, _, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer deps.Close()

	opts := deps.ImportOptions
	if importDelimiter != "" {
		r := []rune(importDelimiter)
		if len(r) != 1 {
			return fmt.Errorf("el delimitador debe ser un solo carácter: %q", importDelimiter)
		}
		opts.Delimiter = r[0]
	}
	if importCharset != "" {
		opts.Charset = importCharset
	}
	opts.SkipHeader = importHeader

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := csvimport.NewReader(f, opts)
	if err != nil {
		return err
	}
	res, err := deps.Socks.ImportBatch(ctx, rows, mode)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "filas aplicadas: %d\n", res.Processed)
	for _, fail := range res.Failures {
		fmt.Fprintf(out, "fila %d rechazada (%s): %s\n", fail.Row, fail.Line, fail.Message)
	}
	return nil
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/socks-api/internal/domain/entity"
)

var (
	qColor      string
	qComparison string
	qCotton     int64
	qMinCotton  int64
	qMaxCotton  int64

	mColor    string
	mCotton   int64
	mQuantity int64
)

var quantityCmd = &cobra.Command{
	Use:   "quantity",
	Short: "Total de pares que cumplen el filtro",
	Args:  cobra.NoArgs,
	RunE:  runQuantity,
}

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Registra una entrada de pares",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMovement(cmd, true)
	},
}

var outcomeCmd = &cobra.Command{
	Use:   "outcome",
	Short: "Registra una salida de pares",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMovement(cmd, false)
	},
}

func init() {
	quantityCmd.Flags().StringVar(&qColor, "color", "", "color exacto")
	quantityCmd.Flags().StringVar(&qComparison, "comparison", "", "moreThen|lessThan|equal")
	quantityCmd.Flags().Int64Var(&qCotton, "cotton", 0, "porcentaje de algodón a comparar")
	quantityCmd.Flags().Int64Var(&qMinCotton, "min-cotton", 0, "algodón mínimo (inclusive)")
	quantityCmd.Flags().Int64Var(&qMaxCotton, "max-cotton", 0, "algodón máximo (inclusive)")

	for _, c := range []*cobra.Command{incomeCmd, outcomeCmd} {
		c.Flags().StringVar(&mColor, "color", "", "color")
		c.Flags().Int64Var(&mCotton, "cotton", 0, "porcentaje de algodón (0-100)")
		c.Flags().Int64Var(&mQuantity, "quantity", 0, "cantidad de pares (> 0)")
		_ = c.MarkFlagRequired("color")
		_ = c.MarkFlagRequired("quantity")
	}

	rootCmd.AddCommand(quantityCmd, incomeCmd, outcomeCmd)
}

// quantityFilter arma el filtro solo con los flags indicados explícitamente.
func quantityFilter(cmd *cobra.Command) entity.QuantityFilter {
	var f entity.QuantityFilter
	flags := cmd.Flags()
	if flags.Changed("color") {
		f.Color = &qColor
	}
	f.Comparison = entity.ParseComparison(qComparison)
	if flags.Changed("cotton") {
		f.CottonPercentage = &qCotton
	}
	if flags.Changed("min-cotton") {
		f.MinCotton = &qMinCotton
	}
	if flags.Changed("max-cotton") {
		f.MaxCotton = &qMaxCotton
	}
	return f
}

func runQuantity(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	deps, _, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer deps.Close()

	total, err := deps.Socks.Quantity(ctx, quantityFilter(cmd))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), total)
	return nil
}

func runMovement(cmd *cobra.Command, income bool) error {
	ctx := cmd.Context()
	deps, _, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer deps.Close()

	if income {
		err = deps.Socks.Income(ctx, mColor, mCotton, mQuantity)
	} else {
		err = deps.Socks.Outcome(ctx, mColor, mCotton, mQuantity)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}

// Package commands define los subcomandos de socksctl.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jhoicas/socks-api/internal/app"
	"github.com/jhoicas/socks-api/pkg/config"
	"github.com/jhoicas/socks-api/pkg/logger"
)

var (
	// Flags globales
	storage  string
	logLevel string
	migrate  bool
)

var rootCmd = &cobra.Command{
	Use:   "socksctl",
	Short: "Operación del almacén de calcetines",
	Long: `socksctl administra el almacén de calcetines sin pasar por la API HTTP.

La configuración se lee de las mismas variables de entorno (o .env) que la API.

Examples:
  socksctl migrate
  socksctl import stock.csv --delimiter ';' --mode best_effort
  socksctl quantity --color red --comparison moreThen --cotton 50
  socksctl income --color red --cotton 80 --quantity 10
  socksctl token --user ops --role admin`,
	SilenceUsage: true,
}

// Execute ejecuta el comando raíz. Lo llama main.main().
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteArgs ejecuta el comando raíz con argumentos y salida explícitos.
// Los flags vuelven a su valor por defecto antes de cada ejecución.
func ExecuteArgs(args []string, out io.Writer) error {
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	return rootCmd.Execute()
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storage, "storage", "", "almacenamiento: postgres|memory (por defecto SOCKS_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "nivel de log (por defecto LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&migrate, "migrate", false, "aplicar migraciones antes de ejecutar el comando")
}

// loadConfig carga la configuración y aplica los flags globales.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	switch storage {
	case "":
	case "postgres", "memory":
		cfg.Socks.Storage = storage
	default:
		return nil, fmt.Errorf("--storage inválido: %q", storage)
	}
	if logLevel != "" {
		cfg.App.LogLevel = logLevel
	}
	return cfg, nil
}

// newLogger escribe en stderr para no mezclar logs con la salida del comando.
func newLogger(cfg *config.Config) *logger.Logger {
	return logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr})
}

// buildDeps arma el caso de uso con la configuración efectiva.
func buildDeps(ctx context.Context) (*app.Deps, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := newLogger(cfg)
	deps, err := app.Build(ctx, cfg, log.Zerolog(), app.Options{Migrate: migrate || cfg.DB.AutoMigrate})
	if err != nil {
		return nil, nil, err
	}
	return deps, cfg, nil
}

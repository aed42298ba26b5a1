package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/socks-api/pkg/jwt"
)

var (
	tokenUser    string
	tokenRole    string
	tokenExpires int
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite un JWT firmado con JWT_SECRET para las rutas de escritura",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "socksctl", "sujeto (user_id) del token")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "bodeguero", "rol: admin|bodeguero")
	tokenCmd.Flags().IntVar(&tokenExpires, "expires", 0, "minutos de validez (por defecto JWT_EXPIRATION_MINUTES)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.JWT.Secret == "" {
		return errors.New("JWT_SECRET no configurado")
	}
	exp := cfg.JWT.Expiration
	if tokenExpires > 0 {
		exp = tokenExpires
	}
	token, err := jwt.Generate(cfg.JWT.Secret, tokenUser, tokenRole, cfg.JWT.Issuer, exp)
	if err != nil {
		return fmt.Errorf("firmar token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

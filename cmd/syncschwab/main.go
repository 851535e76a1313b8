package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "2.1.0"

func main() {
	var (
		cfgPath string
		envFile string
	)

	root := &cobra.Command{
		Use:     "syncschwab",
		Short:   "Gestión de cuentas del copiador (main + slaves, tokens, config)",
		Version: version,
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "syncschwab.yaml", "ruta al archivo de configuración YAML")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "ruta al .env con las credenciales por cuenta")

	root.AddCommand(
		newServeCmd(&cfgPath, &envFile),
		newClientsCmd(&cfgPath, &envFile),
		newTokensCmd(&cfgPath, &envFile),
		newStatusCmd(&cfgPath, &envFile),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

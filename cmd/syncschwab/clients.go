package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newClientsCmd(cfgPath, envFile *string) *cobra.Command {
	clientsCmd := &cobra.Command{
		Use:   "clients",
		Short: "CRUD de cuentas cliente (slaves)",
	}

	var enabledOnly bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Lista las cuentas cliente",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*cfgPath, *envFile)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			clients, err := a.registry.List(ctx)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tACCOUNT\tENABLED")
			for _, c := range clients {
				if enabledOnly && !c.Enabled {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%v\n", c.ID, c.Name, c.AccountNumber, c.Enabled)
			}
			return tw.Flush()
		},
	}
	listCmd.Flags().BoolVar(&enabledOnly, "enabled", false, "solo clientes habilitados")

	var (
		addHash     string
		addNumber   string
		addName     string
		addSettings string
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Agrega una cuenta cliente",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addHash == "" || addNumber == "" || addName == "" {
				return fmt.Errorf("faltan flags: --hash, --number y --name son requeridos")
			}

			settings := map[string]any{}
			if addSettings != "" {
				if err := json.Unmarshal([]byte(addSettings), &settings); err != nil {
					return fmt.Errorf("--settings no es JSON válido: %w", err)
				}
			}

			a, err := buildApp(*cfgPath, *envFile)
			if err != nil {
				return err
			}
			defer a.close()

			client, err := a.registry.Add(cmd.Context(), addHash, addNumber, addName, settings)
			if err != nil {
				return err
			}
			fmt.Printf("added %s (%s)\n", client.ID, client.Name)
			return nil
		},
	}
	addCmd.Flags().StringVar(&addHash, "hash", "", "account hash")
	addCmd.Flags().StringVar(&addNumber, "number", "", "account number")
	addCmd.Flags().StringVar(&addName, "name", "", "nombre visible")
	addCmd.Flags().StringVar(&addSettings, "settings", "", "settings iniciales (JSON)")

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Elimina una cuenta cliente (idempotente)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*cfgPath, *envFile)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.registry.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("removed %s\n", args[0])
			return nil
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Habilita/deshabilita una cuenta cliente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*cfgPath, *envFile)
			if err != nil {
				return err
			}
			defer a.close()

			enabled, err := a.registry.Toggle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s enabled=%v\n", args[0], enabled)
			return nil
		},
	}

	clientsCmd.AddCommand(listCmd, addCmd, removeCmd, toggleCmd)
	return clientsCmd
}

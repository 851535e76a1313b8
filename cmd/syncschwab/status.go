package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leozex777/syncschwab/internal/refresher"
)

func newStatusCmd(cfgPath, envFile *string) *cobra.Command {
	var asJSON bool

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Estado consolidado: main account, clientes, tokens y worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*cfgPath, *envFile)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			agg, err := a.agg.CheckAll(ctx, a.registry)
			if err != nil {
				return err
			}
			main, err := a.registry.MainAccount(ctx)
			if err != nil {
				return err
			}
			ws := refresher.ReadWorkerStatus(a.cfg)

			if asJSON {
				out := map[string]any{
					"tokens":       agg,
					"main_account": main,
					"worker":       ws,
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			if main.IsZero() {
				fmt.Println("main account: not configured")
			} else {
				fmt.Printf("main account: %s\n", main.AccountNumber)
			}
			fmt.Printf("main token:   %s\n", agg.Main.Message)
			fmt.Printf("clients:      %d total, %d authorized, %d need re-auth\n",
				agg.TotalClients, agg.AuthorizedClients, agg.NeedsAuthClients)
			fmt.Printf("worker:       command=%s running=%v\n", ws.Command, ws.Running)
			return nil
		},
	}

	statusCmd.Flags().BoolVar(&asJSON, "json", false, "salida JSON")
	return statusCmd
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTokensCmd(cfgPath, envFile *string) *cobra.Command {
	tokensCmd := &cobra.Command{
		Use:   "tokens",
		Short: "Chequeos de validez de refresh tokens",
	}

	checkCmd := &cobra.Command{
		Use:   "check [account-id]",
		Short: "Chequea el token de una cuenta (main o slave_N); sin argumento chequea todas",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*cfgPath, *envFile)
			if err != nil {
				return err
			}
			defer a.close()

			if len(args) == 1 {
				id := args[0]
				if id == "main" {
					fmt.Printf("main: %s\n", a.agg.CheckMain().Message)
					return nil
				}
				client, err := a.registry.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				st := a.agg.CheckClient(id, client.Name)
				fmt.Printf("%s: %s\n", id, st.Message)
				return nil
			}

			agg, err := a.agg.CheckAll(cmd.Context(), a.registry)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ACCOUNT\tNAME\tSTATUS")
			fmt.Fprintf(tw, "main\t\t%s\n", agg.Main.Message)
			for _, c := range agg.Clients {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ClientID, c.ClientName, c.Message)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Printf("\n%d/%d authorized, %d need re-auth\n",
				agg.AuthorizedClients, agg.TotalClients, agg.NeedsAuthClients)
			return nil
		},
	}

	tokensCmd.AddCommand(checkCmd)
	return tokensCmd
}

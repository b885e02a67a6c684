package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"rahmet_export/internal/choco"
	"rahmet_export/internal/report"
)

type action struct {
	name        string
	description string
	run         func(ctx context.Context, r *Runner, client *choco.Client, out io.Writer) error
}

var actions = []action{
	{
		name:        "main",
		description: "branch statistics for the last month",
		run: func(ctx context.Context, r *Runner, client *choco.Client, out io.Writer) error {
			path, err := r.exporter.Export(ctx, report.NewBranchesBuilder(client))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Data has been saved to %s\n", path)
			return nil
		},
	},
	{
		name:        "customers",
		description: "top customers by turnover with payment history",
		run: func(ctx context.Context, r *Runner, client *choco.Client, out io.Writer) error {
			path, err := r.exporter.Export(ctx, report.NewCustomersBuilder(client))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Customer data has been saved to %s\n", path)
			return nil
		},
	},
	{
		name:        "profile",
		description: "print the token owner's profile as JSON",
		run: func(ctx context.Context, _ *Runner, client *choco.Client, out io.Writer) error {
			user, err := client.FetchUser(ctx)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(user)
		},
	},
}

func lookupAction(name string) (action, bool) {
	for _, a := range actions {
		if a.name == name {
			return a, true
		}
	}
	return action{}, false
}

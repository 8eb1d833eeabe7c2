package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProvidersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List registered link providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.open(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			pool := a.module.Pool()
			configs := pool.Configurations(opts.locale)
			w := cmd.OutOrStdout()
			for _, key := range pool.Keys() {
				cfg, ok := configs[key]
				if !ok {
					fmt.Fprintln(w, key)
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", key, cfg.Title, cfg.ResourceKey, cfg.Icon, cfg.EmptyText)
			}
			return nil
		},
	}
}

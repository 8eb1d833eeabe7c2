package cli

import (
	"fmt"

	"github.com/goliatone/go-linktags/pkg/commands"
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Report tags whose targets do not resolve",
		Long:  `Validate prints every tag whose target is missing in the locale and exits non-zero when there is at least one.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.open(cmd, true)
			if err != nil {
				return err
			}
			defer a.Close()

			results, err := a.module.ValidateAll(a.ctx, commands.Occurrences(a.fixture.Tags), opts.locale)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if results.Len() == 0 {
				fmt.Fprintf(w, "all %d tag(s) valid\n", len(a.fixture.Tags))
				return nil
			}
			for _, raw := range results.Keys() {
				result, _ := results.Get(raw)
				fmt.Fprintf(w, "%s => %s\n", raw, result)
			}
			return fmt.Errorf("%w: %d tag(s)", ErrInvalidLinks, results.Len())
		},
	}
}

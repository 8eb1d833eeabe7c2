package cli

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-linktags/pkg/commands"
	"github.com/jaytaylor/html2text"
	"github.com/spf13/cobra"
)

func newRenderCmd(opts *options) *cobra.Command {
	var text bool
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the replacement of every tag in the fixture",
		Long:  `Render resolves every tag of the fixture and prints "raw => replacement" lines in fixture order.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.open(cmd, true)
			if err != nil {
				return err
			}
			defer a.Close()

			out, err := a.module.ParseAll(a.ctx, commands.Occurrences(a.fixture.Tags), opts.locale)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, raw := range out.Keys() {
				replacement, _ := out.Get(raw)
				if text {
					replacement, err = plainText(replacement)
					if err != nil {
						return err
					}
				}
				fmt.Fprintf(w, "%s => %s\n", raw, replacement)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "convert replacements to plain text")
	return cmd
}

func plainText(html string) (string, error) {
	if html == "" {
		return "", nil
	}
	plain, err := html2text.FromString(html, html2text.Options{PrettyTables: true})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(plain), nil
}

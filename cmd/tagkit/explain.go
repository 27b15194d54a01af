package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/tagkit/internal/errors"
)

func explainCmd(_ *app) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "explain <code>",
		Short: "Explain an error code",
		Long: `Show the description and fix for an error code.

Examples:
  tagkit explain E104
  tagkit explain --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list || len(args) == 0 {
				for _, code := range errors.GetAllCodes() {
					t, _ := errors.GetTemplate(code)
					fmt.Fprintf(out, "%s  %-8s %s\n", code, t.Category, t.Message)
				}
				return nil
			}

			code := strings.ToUpper(args[0])
			md, ok := errors.Markdown(code)
			if !ok {
				return errors.New("E123").WithDetailf("%q is not a known error code", args[0])
			}
			rendered, err := renderMarkdown(md, isTerminal(out))
			if err != nil {
				fmt.Fprint(out, md)
				return nil
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List every error code")

	return cmd
}

// renderMarkdown renders md for the terminal. Without a terminal the plain
// notty style is used.
func renderMarkdown(md string, tty bool) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(80)}
	if tty {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"

	"github.com/vango-dev/tagkit/internal/errors"
	"github.com/vango-dev/tagkit/internal/logging"
	"github.com/vango-dev/tagkit/pkg/tags"
)

type renderOptions struct {
	attrs    []string
	data     []string
	classes  []string
	newline  string
	xhtml    bool
	markdown bool
	check    bool
}

func renderCmd(a *app) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <name> [content]",
		Short: "Render one tag",
		Long: `Render one tag with optional content and attributes.

Examples:
  tagkit render div "Hello" --class card --attr id=main
  tagkit render input --attr type=checkbox --attr checked=true
  tagkit render br --newline=false --xhtml
  tagkit render section "# Title" --markdown --check`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("E120")
			}
			return a.runRender(cmd.OutOrStdout(), args, opts, cmd.Flags().Changed("xhtml"))
		},
	}

	cmd.Flags().StringArrayVarP(&opts.attrs, "attr", "a", nil, "Attribute as key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.data, "data", "d", nil, "Data attribute as key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.classes, "class", "c", nil, "Class to merge into the class attribute (repeatable)")
	cmd.Flags().StringVar(&opts.newline, "newline", "", "Newline override: true or false")
	cmd.Flags().BoolVar(&opts.xhtml, "xhtml", false, "Close self-closing tags with \" />\" (default from config)")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "Convert the content from Markdown to HTML first")
	cmd.Flags().BoolVar(&opts.check, "check", false, "Verify that the markup is well-formed")

	return cmd
}

func (a *app) runRender(out io.Writer, args []string, opts renderOptions, xhtmlSet bool) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	var extra []tags.Option
	extra = append(extra, tags.WithLogger(logging.Slog("render")))
	if xhtmlSet {
		extra = append(extra, tags.WithXHTML(opts.xhtml))
	}
	r, err := cfg.Renderer(extra...)
	if err != nil {
		return err
	}

	attrs, err := parseAttrs(opts.attrs, r.Tables())
	if err != nil {
		return err
	}
	for _, pair := range opts.data {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return errors.New("E121").WithDetailf("%q is not a key=value pair", pair)
		}
		if err := addData(attrs, strings.TrimSpace(key), value); err != nil {
			return err
		}
	}
	if len(opts.classes) > 0 {
		classes := make([]any, len(opts.classes))
		for i, c := range opts.classes {
			classes[i] = c
		}
		attrs = tags.MergeAttrClasses(attrs, classes...)
	}
	if opts.newline != "" {
		if b, err := strconv.ParseBool(opts.newline); err == nil {
			attrs[tags.NewlineKey] = b
		} else {
			attrs[tags.NewlineKey] = opts.newline
		}
	}

	tagArgs := []any{attrs}
	if len(args) > 1 {
		content := args[1]
		if opts.markdown {
			if content, err = markdownToHTML(content); err != nil {
				return err
			}
		}
		tagArgs = append(tagArgs, content)
	}

	markup, err := r.View(nil).Tag(args[0], tagArgs...)
	if err != nil {
		return err
	}
	if opts.check {
		if err := checkMarkup(markup, r.Tables(), r.XHTML()); err != nil {
			return err
		}
	}
	fmt.Fprint(out, markup)
	return nil
}

// markdownToHTML converts Markdown to HTML with GitHub Flavored Markdown.
func markdownToHTML(src string) (string, error) {
	var buf bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", errors.Newf(errors.CategoryCLI, "convert markdown").Wrap(err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// checkMarkup verifies that markup is well-formed: XML for XHTML output,
// balanced tags for HTML output. Self-closing tags are taken from t.
func checkMarkup(markup string, t *tags.Tables, xhtml bool) error {
	var err error
	if xhtml {
		err = etree.NewDocument().ReadFromString(markup)
	} else {
		err = checkHTML(markup, t)
	}
	if err != nil {
		return errors.New("E122").WithDetail(err.Error()).Wrap(err)
	}
	return nil
}

// checkHTML reports unbalanced start and end tags. Tags that t classifies as
// self-closing never take an end tag.
func checkHTML(markup string, t *tags.Tables) error {
	z := html.NewTokenizer(strings.NewReader(markup))
	var stack []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return z.Err()
			}
			if len(stack) > 0 {
				return fmt.Errorf("<%s> is not closed", stack[len(stack)-1])
			}
			return nil
		case html.StartTagToken:
			name, _ := z.TagName()
			if !t.IsSelfClosing(string(name)) {
				stack = append(stack, string(name))
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if len(stack) == 0 || stack[len(stack)-1] != string(name) {
				return fmt.Errorf("unexpected </%s>", name)
			}
			stack = stack[:len(stack)-1]
		}
	}
}

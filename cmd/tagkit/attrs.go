package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tagkit/internal/errors"
	"github.com/vango-dev/tagkit/pkg/tags"
)

// parseAttrs converts key=value arguments to attributes. "data.x" keys
// build the data map. The newline key and boolean attributes accept true or
// false.
func parseAttrs(pairs []string, tables *tags.Tables) (tags.Attrs, error) {
	attrs := tags.Attrs{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.New("E121").WithDetailf("%q is not a key=value pair", pair)
		}
		if strings.HasPrefix(key, tags.DataKey+".") {
			if err := addData(attrs, strings.TrimPrefix(key, tags.DataKey+"."), value); err != nil {
				return nil, err
			}
			continue
		}
		attrs[key] = parseValue(key, value, tables)
	}
	return attrs, nil
}

// addData sets one entry of the data map.
func addData(attrs tags.Attrs, key, value string) error {
	if key == "" {
		return errors.New("E121").WithDetail("data attributes need a name, e.g. data.role=nav")
	}
	data, ok := attrs[tags.DataKey].(map[string]any)
	if !ok {
		data = map[string]any{}
		attrs[tags.DataKey] = data
	}
	data[key] = value
	return nil
}

func parseValue(key, value string, tables *tags.Tables) any {
	if key == tags.NewlineKey || tables.IsBooleanAttr(key) {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return value
}

func attrsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "attrs key=value...",
		Short: "Print the normalized attribute string",
		Long: `Normalize attributes the way tags render them.

Keys are sorted, data.x entries become data-x attributes and boolean
attributes are mirrored (checked=true becomes checked="checked").

Examples:
  tagkit attrs id=main class=card
  tagkit attrs type=checkbox checked=true data.role=toggle`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			tables, err := cfg.TagTables()
			if err != nil {
				return err
			}
			attrs, err := parseAttrs(args, tables)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimPrefix(tables.Normalize(attrs), " "))
			return nil
		},
	}
}

func classesCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classes <class>...",
		Short: "Merge class lists",
		Long: `Merge class lists into one sorted, de-duplicated class string.

Every argument may hold several whitespace-separated classes.

Examples:
  tagkit classes "btn" "btn-primary btn"`,
		Run: func(cmd *cobra.Command, args []string) {
			classes := make([]any, len(args))
			for i, arg := range args {
				classes[i] = arg
			}
			fmt.Fprintln(cmd.OutOrStdout(), tags.MergeClasses(classes...))
		},
	}
}

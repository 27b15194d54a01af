// Package config provides configuration loading for tagkit.
//
// Configuration is layered: built-in defaults, then a TOML or YAML file,
// then TAGKIT_ environment variables. The file is tagkit.toml (or
// tagkit.yaml) in the working directory, falling back to tagkit/tagkit.toml
// under the XDG config directories.
//
// # Configuration File Structure
//
//	[tags]
//	xhtml = false
//	add_newlines = true
//
//	[tables]
//	self_closing = ["wbr", "source"]
//	single_line = ["mark"]
//
//	[server]
//	host = "localhost"
//	port = 7070
//	metrics = true
//	tracing = false
//
// Entries under [tables] are added to the built-in classification tables.
//
// # Environment
//
// Every key can be overridden with TAGKIT_<SECTION>_<KEY>, for example
// TAGKIT_TAGS_XHTML=true or TAGKIT_TABLES_SELF_CLOSING=wbr,source.
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r, err := cfg.Renderer()
package config

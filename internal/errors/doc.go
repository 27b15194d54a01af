// Package errors provides structured, coded errors for tagkit.
//
// The tag builder itself never fails on input; it renders whatever it is
// given. Errors come from the surfaces around it: configuration loading,
// table construction, the CLI and the preview server. Each of those reports a
// *TagkitError carrying a registered code, a category, a short message and an
// optional detail, suggestion and wrapped cause.
//
// # Error Codes
//
//   - E100-E119: configuration and tables
//   - E120-E139: CLI
//   - E140-E159: preview server
//
// # Usage
//
//	err := errors.New("E104").
//	    WithDetail(`tag "p" is listed as both multi-line and single-line`).
//	    WithSuggestion("Remove the tag from one of the tables")
//
//	fmt.Fprint(os.Stderr, err.Format())
//
// The `tagkit explain <code>` command renders Markdown(code) in the terminal.
package errors

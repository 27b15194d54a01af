package errors

import (
	"sort"
	"strings"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	Fix      string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "An explicit configuration path was given but no file exists there.",
		Fix:      "Run `tagkit config init` to write a default tagkit.toml, or drop the --config flag to use the built-in defaults.",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be parsed as TOML or YAML.",
		Fix:      "Check the file syntax. Keys live under the `tags`, `tables` and `server` sections.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Unsupported configuration format",
		Detail:   "Configuration files must end in .toml, .yaml or .yml.",
		Fix:      "Rename the file with a supported extension.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is outside its allowed range.",
		Fix:      "The server port must be between 0 and 65535.",
	},
	"E104": {
		Category: CategoryTables,
		Message:  "Conflicting tag tables",
		Detail:   "A tag name appears in more than one of the self-closing, multi-line and single-line tables. The shape of every tag must be unambiguous.",
		Fix:      "Remove the tag from all but one of the `tables` lists.",
	},

	// ============================================
	// CLI Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryCLI,
		Message:  "Missing tag name",
		Detail:   "The render command needs the name of the tag to build.",
		Fix:      "Pass the tag name as the first argument, e.g. `tagkit render div hello`.",
	},
	"E121": {
		Category: CategoryCLI,
		Message:  "Invalid attribute argument",
		Detail:   "Attributes are given as key=value pairs.",
		Fix:      "Use `--attr id=main` or `--data role=nav`.",
	},
	"E122": {
		Category: CategoryCLI,
		Message:  "Markup is not well-formed",
		Detail:   "The rendered markup failed the well-formedness check.",
		Fix:      "Check the tag name and content. XHTML output must parse as XML.",
	},
	"E123": {
		Category: CategoryCLI,
		Message:  "Unknown error code",
		Detail:   "The code passed to `tagkit explain` is not registered.",
		Fix:      "Run `tagkit explain --list` to see every code.",
	},

	// ============================================
	// Server Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryServer,
		Message:  "Invalid request body",
		Detail:   "The request body is not valid JSON for this endpoint.",
		Fix:      "POST /render expects {\"name\": ..., \"content\": ..., \"attrs\": {...}, \"children\": [...]}.",
	},
	"E141": {
		Category: CategoryServer,
		Message:  "Render failed",
		Detail:   "A nested block returned an error while rendering.",
		Fix:      "Every node in the tree needs a non-empty name.",
	},
	"E142": {
		Category: CategoryServer,
		Message:  "Invalid tag name",
		Detail:   "Tag names start with a letter and contain only letters, digits and dashes.",
		Fix:      "Request a tag such as /tags/div or /tags/my-widget.",
	},
}

// GetAllCodes returns all registered error codes in ascending order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[strings.ToUpper(code)]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}

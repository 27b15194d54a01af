package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func init() {
	DisableColors()
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "config error",
			code:    "E101",
			wantMsg: "Invalid configuration file",
			wantCat: CategoryConfig,
		},
		{
			name:    "tables error",
			code:    "E104",
			wantMsg: "Conflicting tag tables",
			wantCat: CategoryTables,
		},
		{
			name:    "cli error",
			code:    "E121",
			wantMsg: "Invalid attribute argument",
			wantCat: CategoryCLI,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "flag %q is required", "name")
	if err.Message != `flag "name" is required` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestTagkitError_Error(t *testing.T) {
	err := New("E120")
	if got, want := err.Error(), "E120: Missing tag name"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err.WithDetail("no arguments")
	if got, want := err.Error(), "E120: Missing tag name: no arguments"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := &TagkitError{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := New("E101").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	var te *TagkitError
	wrapped := fmt.Errorf("loading: %w", err)
	if !stderrors.As(wrapped, &te) || te.Code != "E101" {
		t.Error("errors.As should find the TagkitError")
	}
	if !HasCode(wrapped, "E101") {
		t.Error("HasCode should look through wrapping")
	}
	if HasCode(wrapped, "E102") {
		t.Error("HasCode matched the wrong code")
	}
}

func TestHasCodeSearchesErrorTree(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		want bool
	}{
		{"nil", nil, "E101", false},
		{"joined", stderrors.Join(fmt.Errorf("flush"), New("E141")), "E141", true},
		{"multi wrap", fmt.Errorf("%w and %w", fmt.Errorf("a"), New("E140")), "E140", true},
		{"nested codes", New("E122").Wrap(New("E121")), "E121", true},
		{"plain error", fmt.Errorf("E101"), "E101", false},
		{"codeless", Newf(CategoryCLI, "oops"), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCode(tt.err, tt.code); got != tt.want {
				t.Errorf("HasCode(%v, %q) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E101") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("E104")
	if FromError(orig, "E101") != orig {
		t.Error("FromError should return TagkitErrors unchanged")
	}

	wrapped := FromError(fmt.Errorf("boom"), "E141")
	if wrapped.Code != "E141" || wrapped.Wrapped == nil {
		t.Errorf("FromError wrapped = %+v", wrapped)
	}
}

func TestLocationString(t *testing.T) {
	tests := []struct {
		loc  *Location
		want string
	}{
		{nil, ""},
		{&Location{File: "tagkit.toml"}, "tagkit.toml"},
		{&Location{File: "tagkit.toml", Line: 3}, "tagkit.toml:3"},
		{&Location{File: "tagkit.toml", Line: 3, Column: 7}, "tagkit.toml:3:7"},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	err := New("E104").
		WithFile("tagkit.toml").
		WithDetail(`tag "p" is listed as both multi-line and single-line`).
		WithSuggestion("Remove p from one table").
		WithExample("[tables]\nsingle_line = [\"p\"]")

	out := err.Format()
	for _, want := range []string{
		"ERROR E104: Conflicting tag tables",
		"tagkit.toml",
		`tag "p" is listed`,
		"Hint: Remove p from one table",
		"Example:",
		`    single_line = ["p"]`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E100").WithFile("missing.toml")
	if got, want := err.FormatCompact(), "missing.toml: E100: Configuration file not found"; got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E140").WithDetail("unexpected EOF").Wrap(fmt.Errorf("eof"))

	var decoded map[string]string
	if jerr := json.Unmarshal([]byte(err.FormatJSON()), &decoded); jerr != nil {
		t.Fatalf("FormatJSON() is not valid JSON: %v", jerr)
	}
	if decoded["code"] != "E140" || decoded["category"] != "server" || decoded["cause"] != "eof" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestMarkdown(t *testing.T) {
	md, ok := Markdown("e104")
	if !ok {
		t.Fatal("Markdown should accept lower-case codes")
	}
	if !strings.HasPrefix(md, "# E104: Conflicting tag tables") {
		t.Errorf("unexpected heading: %q", md)
	}
	if !strings.Contains(md, "## How to fix") {
		t.Error("missing fix section")
	}

	if _, ok := Markdown("E999"); ok {
		t.Error("unknown code should not render")
	}
}

func TestGetAllCodesSorted(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("registry is empty")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
	for _, code := range codes {
		tmpl, _ := GetTemplate(code)
		if tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("%s has an incomplete template", code)
		}
	}
}

func TestFprint(t *testing.T) {
	var buf bytes.Buffer
	Fprint(&buf, New("E120"))
	if !strings.Contains(buf.String(), "E120: Missing tag name") {
		t.Errorf("Fprint(TagkitError) = %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, fmt.Errorf("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("Fprint(error) = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 40), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line too long: %q", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should produce no lines")
	}
}

package capture

import (
	"errors"
	"testing"
)

func TestAsBlock(t *testing.T) {
	boom := errors.New("boom")
	called := false

	tests := []struct {
		name    string
		in      any
		ok      bool
		want    string
		wantErr error
	}{
		{name: "nil", in: nil},
		{name: "string", in: "content"},
		{name: "nil func", in: (func() string)(nil)},
		{name: "BlockFunc", in: BlockFunc(func() (string, error) { return "a", nil }), ok: true, want: "a"},
		{name: "TemplateBlock", in: TemplateBlock(func() (string, error) { return "b", nil }), ok: true, want: "b"},
		{name: "func string error", in: func() (string, error) { return "c", nil }, ok: true, want: "c"},
		{name: "func string", in: func() string { return "d" }, ok: true, want: "d"},
		{name: "func error", in: func() error { return boom }, ok: true, wantErr: boom},
		{name: "func", in: func() { called = true }, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := AsBlock(tt.in)
			if ok != tt.ok {
				t.Fatalf("AsBlock() ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			got, err := b.Run()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Run() = %q, want %q", got, tt.want)
			}
		})
	}

	if !called {
		t.Error("plain func block was not run")
	}
}

func TestNilBlockFuncRuns(t *testing.T) {
	var f BlockFunc
	if s, err := f.Run(); s != "" || err != nil {
		t.Errorf("nil BlockFunc.Run() = %q, %v", s, err)
	}
}

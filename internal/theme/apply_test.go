package theme

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type failingSink struct{ calls int }

func (f *failingSink) SetVariable(string, string) error {
	f.calls++
	return errors.New("style target detached")
}

type panickingSink struct{}

func (panickingSink) SetVariable(string, string) error { panic("renderer gone") }

func TestApply_SetsEveryTokenVariable(t *testing.T) {
	sheet := NewStylesheet()
	NewApplier(sheet, zap.NewNop()).Apply(Default())

	vars := sheet.Variables()
	if len(vars) != len(Tokens()) {
		t.Fatalf("variables set = %d, want %d", len(vars), len(Tokens()))
	}
	if got := vars["--primary-color"]; got != Default()[string(PrimaryColor)] {
		t.Errorf("--primary-color = %q", got)
	}
	if got := vars["--sidebar-text"]; got != "rgba(255, 255, 255, 0.85)" {
		t.Errorf("--sidebar-text = %q", got)
	}
}

func TestApply_SkipsUnknownKeys(t *testing.T) {
	sheet := NewStylesheet()
	applied := NewApplier(sheet, zap.NewNop()).Apply(Mapping{
		string(HeaderText): "#111111",
		"brandWatermark":   "#222222",
	})

	vars := sheet.Variables()
	if len(vars) != 1 || vars["--header-text"] != "#111111" {
		t.Errorf("variables = %v, want only --header-text", vars)
	}
	if len(applied) != 1 {
		t.Errorf("applied = %v, want one entry", applied)
	}
}

func TestApply_Idempotent(t *testing.T) {
	once := NewStylesheet()
	twice := NewStylesheet()
	m := Default()

	NewApplier(once, zap.NewNop()).Apply(m)
	a := NewApplier(twice, zap.NewNop())
	a.Apply(m)
	a.Apply(m)

	if once.CSS() != twice.CSS() {
		t.Errorf("applying twice changed state:\n%s\nvs\n%s", once.CSS(), twice.CSS())
	}
}

func TestApply_SinkErrorsSwallowed(t *testing.T) {
	sink := &failingSink{}
	applied := NewApplier(sink, zap.NewNop()).Apply(Default())

	if sink.calls != len(Tokens()) {
		t.Errorf("sink calls = %d, want %d (keeps going after errors)", sink.calls, len(Tokens()))
	}
	if len(applied) != 0 {
		t.Errorf("applied = %d entries, want 0", len(applied))
	}
}

func TestApply_SinkPanicRecovered(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Apply propagated panic: %v", r)
		}
	}()
	NewApplier(panickingSink{}, zap.NewNop()).Apply(Default())
}

func TestStylesheet_CSS(t *testing.T) {
	sheet := NewStylesheet()
	_ = sheet.SetVariable("--b", "#000000")
	_ = sheet.SetVariable("--a", "#ffffff")

	want := ":root {\n  --a: #ffffff;\n  --b: #000000;\n}\n"
	if got := sheet.CSS(); got != want {
		t.Errorf("CSS() =\n%s\nwant\n%s", got, want)
	}

	if err := sheet.SetVariable("color", "#fff"); err == nil {
		t.Error("expected error for name without -- prefix")
	}
}

func TestMultiSink(t *testing.T) {
	a, b := NewStylesheet(), NewStylesheet()
	bad := &failingSink{}

	err := MultiSink{a, bad, b}.SetVariable("--x", "#010203")
	if err == nil || !strings.Contains(err.Error(), "detached") {
		t.Errorf("err = %v, want joined sink error", err)
	}
	if a.Variables()["--x"] != "#010203" || b.Variables()["--x"] != "#010203" {
		t.Error("healthy sinks did not receive the variable")
	}
}

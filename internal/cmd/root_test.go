package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	if cmd == nil {
		t.Fatal("Root command should not be nil")
	}

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("--help returned error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "stylecheck") {
		t.Errorf("Help text should contain 'stylecheck', got: %s", output)
	}
	for _, sub := range []string{"check", "styles", "summary"} {
		if !strings.Contains(output, sub) {
			t.Errorf("Help text should list %q, got: %s", sub, output)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	old := Version
	Version = "1.2.3"
	defer func() { Version = old }()

	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("--version returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "1.2.3") {
		t.Errorf("expected version in output, got: %s", buf.String())
	}
}

func TestStylesCommand(t *testing.T) {
	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"styles"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("styles returned error: %v", err)
	}
	if got := buf.String(); got != "APA\nCustom\n" {
		t.Errorf("styles output = %q, want %q", got, "APA\nCustom\n")
	}
}

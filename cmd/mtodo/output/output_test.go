package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"ids", FormatID, false},
		{"xml", FormatText, true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatter_Print(t *testing.T) {
	data := struct {
		Title string `json:"title" yaml:"title"`
	}{Title: "Buy milk"}

	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, "{\n  \"title\": \"Buy milk\"\n}\n"},
		{FormatYAML, "title: Buy milk\n"},
		{FormatText, "{Buy milk}\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := NewFormatter(tt.format, &buf).Print(data); err != nil {
			t.Fatalf("%s: Print() error = %v", tt.format, err)
		}
		if buf.String() != tt.want {
			t.Errorf("%s: got %q, want %q", tt.format, buf.String(), tt.want)
		}
	}
}

func TestFormatter_PrintIDs(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatID, &buf)

	if err := f.PrintIDs(nil); err != nil || buf.Len() != 0 {
		t.Fatalf("empty ids wrote %q, err %v", buf.String(), err)
	}
	if err := f.PrintIDs([]string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "a\nb\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestPrinter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.SetQuiet(true)

	p.Success("created")
	p.Info("hello")
	p.Subtle("dim")
	if buf.Len() != 0 {
		t.Errorf("quiet printer wrote %q", buf.String())
	}

	p.Error("boom")
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("errors must print even when quiet, got %q", buf.String())
	}
}

func TestPrinter_Confirm(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		got := NewPrinter(&buf).Confirm(strings.NewReader(tt.answer), "Delete %s?", "x")
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.answer, got, tt.want)
		}
		if !strings.Contains(buf.String(), "Delete x? [y/N]") {
			t.Errorf("prompt = %q", buf.String())
		}
	}
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Table(
		[]string{"ID", "TITLE"},
		[][]string{{"1", "Buy milk"}, {"22", "Café"}},
	)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[2] != "1   Buy milk" || lines[3] != "22  Café" {
		t.Errorf("rows not aligned:\n%s", buf.String())
	}
}

package note

import (
	"strings"
	"testing"
)

func TestExportFileName(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"My Note", "My_Note.html"},
		{"My/Note", "My_Note.html"},
		{"plain", "plain.html"},
		{"keep_under-score", "keep_under-score.html"},
		{"semi;colon&amp", "semi_colon_amp.html"},
	}
	for _, tc := range cases {
		if got := ExportFileName(tc.title); got != tc.want {
			t.Errorf("ExportFileName(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestRenderExportEscapesMarkup(t *testing.T) {
	doc, err := RenderExport("<script>alert(1)</script>", "hello <b>world</b>")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(doc)

	if strings.Contains(html, "<script>") {
		t.Fatal("title markup not escaped in export")
	}
	if strings.Contains(html, "<b>world</b>") {
		t.Fatal("content markup not escaped in export")
	}
	if !strings.Contains(html, "&lt;b&gt;world&lt;/b&gt;") {
		t.Fatal("escaped content missing from export")
	}
	if !strings.Contains(html, "<!DOCTYPE html>") {
		t.Fatal("export is not a standalone HTML document")
	}
}

package htmlsanitize

import (
	"strings"
	"testing"
)

func TestStripTags(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"Dark mode", "Dark mode"},
		{"  Dark\n\tmode  ", "Dark mode"},
		{"<b>Beta</b> search", "Beta search"},
		{"<script>alert('x')</script>Quiz", "Quiz"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
	}
	for _, tt := range tests {
		if got := StripTags(tt.input); got != tt.want {
			t.Errorf("StripTags(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestInline(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "formatting kept",
			input:    "Turns on <strong>new</strong> grading",
			contains: []string{"<strong>new</strong>"},
		},
		{
			name:     "script removed",
			input:    "Hi<script>alert('xss')</script>",
			contains: []string{"Hi"},
			excludes: []string{"<script>", "alert"},
		},
		{
			name:     "block elements dropped",
			input:    "<div><p>Text</p></div>",
			contains: []string{"Text"},
			excludes: []string{"<div>", "<p>"},
		},
		{
			name:     "event handler removed",
			input:    `<em onclick="steal()">x</em>`,
			contains: []string{"<em>x</em>"},
			excludes: []string{"onclick"},
		},
		{
			name:     "javascript link removed",
			input:    `<a href="javascript:alert(1)">bad</a>`,
			excludes: []string{"javascript:"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Inline(tt.input)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Inline(%q) = %q, missing %q", tt.input, got, s)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Inline(%q) = %q, should not contain %q", tt.input, got, s)
				}
			}
		})
	}
}

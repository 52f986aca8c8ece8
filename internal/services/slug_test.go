package services

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"simple title", "Hi There", "hi-there"},
		{"already lowercase", "hello", "hello"},
		{"punctuation collapses", "Breaking: AI & You!", "breaking-ai-you"},
		{"digits kept", "Top 10 Stories of 2026", "top-10-stories-of-2026"},
		{"leading and trailing noise", "  --Hello World-- ", "hello-world"},
		{"repeated separators", "a   b///c", "a-b-c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.expected)
			}
		})
	}
}

package handler

import "testing"

// TestSlugify verifies title-to-slug derivation for Latin, CJK and mixed input
func TestSlugify(t *testing.T) {
	testCases := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "simple title",
			title:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "uppercase and punctuation",
			title:    "Go 1.22: What's New?",
			expected: "go-1-22-what-s-new",
		},
		{
			name:     "chinese characters kept",
			title:    "我的第一篇文章",
			expected: "我的第一篇文章",
		},
		{
			name:     "mixed chinese and latin",
			title:    "Go 并发模式",
			expected: "go-并发模式",
		},
		{
			name:     "leading and trailing symbols trimmed",
			title:    "--Hello!!",
			expected: "hello",
		},
		{
			name:     "symbol runs collapse to one dash",
			title:    "a   ---   b",
			expected: "a-b",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Slugify(tc.title); got != tc.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tc.title, got, tc.expected)
			}
		})
	}
}

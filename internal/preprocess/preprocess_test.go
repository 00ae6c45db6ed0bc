package preprocess

import (
	"strings"
	"testing"
)

func TestStripLinks(t *testing.T) {
	got := StripLinks("read [this guide](https://example.org/guide) and https://example.org/raw")
	if strings.Contains(got, "http") {
		t.Errorf("urls survived stripping: %q", got)
	}
	if !strings.Contains(got, "this guide") {
		t.Errorf("link text lost: %q", got)
	}
}

func TestMarkdownToPlain(t *testing.T) {
	got := MarkdownToPlain("# Rough week\n\nFeeling **stressed** about *finals*.")
	if strings.Contains(got, "#") || strings.Contains(got, "*") {
		t.Errorf("markdown syntax survived: %q", got)
	}
	if !strings.Contains(got, "stressed") || !strings.Contains(got, "finals") {
		t.Errorf("content lost: %q", got)
	}
}

func TestPolarityLabels(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"I love this, it is wonderful and great", "positive"},
		{"this is horrible and awful, I hate everything", "negative"},
		{"the seminar is on tuesday", "neutral"},
	}
	for _, tc := range cases {
		score, label := Polarity(tc.text)
		if label != tc.want {
			t.Errorf("%q: label = %s (score %f), want %s", tc.text, label, score, tc.want)
		}
	}
}

package preprocess

import (
	"html"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

// Community posts arrive as markdown; the extractor wants plain prose with
// no URLs inflating word counts.

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURLPattern      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>`)
)

var polarityAnalyzer = govader.NewSentimentIntensityAnalyzer()

// StripLinks keeps markdown link text and drops bare URLs.
func StripLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")
	return bareURLPattern.ReplaceAllString(input, "")
}

// MarkdownToPlain renders markdown, drops the resulting tags and collapses
// whitespace so only prose reaches the extractor.
func MarkdownToPlain(input string) string {
	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	detagged := htmlTagPattern.ReplaceAllString(string(rendered), " ")
	plain := strings.Join(strings.Fields(html.UnescapeString(detagged)), " ")
	return StripLinks(plain)
}

// Polarity computes a coarse VADER compound score and label for the
// preprocessed text. It is recorded on pipeline results as an observability
// cross-check against the lexicon sentiment and never feeds the scorer.
func Polarity(plain string) (float64, string) {
	score := polarityAnalyzer.PolarityScores(plain).Compound

	label := "neutral"
	if score >= 0.20 {
		label = "positive"
	} else if score <= -0.20 {
		label = "negative"
	}
	return score, label
}

package text

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/campuswell/stresslens/internal/models"
)

// Toxicity squash constants: sparse hits should still produce a meaningful
// score, so the sigmoid is centered well below a 50% hit ratio.
const (
	toxicityCenter    = 0.1
	toxicitySteepness = 10.0
)

// Extractor turns free text into privacy-safe signals. It is stateless
// beyond its immutable lexicon tables and safe for concurrent use.
type Extractor struct {
	lex Lexicons
}

func NewExtractor() *Extractor {
	return &Extractor{lex: DefaultLexicons()}
}

// NewExtractorWithLexicons builds an extractor over caller-supplied tables.
func NewExtractorWithLexicons(lex Lexicons) *Extractor {
	return &Extractor{lex: lex}
}

// Analyze computes sentiment, emotion, toxicity, stress-indicator and
// safety-flag signals for a single text. Tokenization is lowercasing plus
// whitespace splitting with surrounding punctuation trimmed; no stemming.
func (e *Extractor) Analyze(text string) models.TextSignals {
	lowered := strings.ToLower(text)
	words := tokenize(lowered)

	return models.TextSignals{
		Sentiment:        e.sentiment(words),
		Emotion:          e.emotion(words),
		ToxicityScore:    e.toxicity(words),
		StressIndicators: e.stressIndicators(words, lowered),
		SafetyFlags:      e.safetyFlags(lowered),
	}
}

func (e *Extractor) sentiment(words []string) models.SentimentScores {
	if len(words) == 0 {
		return models.SentimentScores{Positive: 0.5, Negative: 0.5, Neutral: 0.0}
	}

	total := float64(len(words))
	positive := float64(countHits(words, e.lex.Positive)) / total
	negative := float64(countHits(words, e.lex.Negative)) / total
	neutral := math.Max(0, 1-positive-negative)

	sum := positive + negative + neutral
	if sum > 0 {
		positive /= sum
		negative /= sum
		neutral /= sum
	}

	return models.SentimentScores{
		Positive: positive,
		Negative: negative,
		Neutral:  neutral,
	}
}

func (e *Extractor) emotion(words []string) models.EmotionScores {
	total := math.Max(float64(len(words)), 1)

	score := func(category string) float64 {
		return round3(float64(countHits(words, e.lex.Emotions[category])) / total)
	}

	return models.EmotionScores{
		Joy:      score(EmotionJoy),
		Sadness:  score(EmotionSadness),
		Anger:    score(EmotionAnger),
		Fear:     score(EmotionFear),
		Surprise: score(EmotionSurprise),
		Disgust:  score(EmotionDisgust),
	}
}

func (e *Extractor) toxicity(words []string) float64 {
	if len(words) == 0 {
		return 0.0
	}

	ratio := float64(countHits(words, e.lex.Toxic)) / float64(len(words))
	return round3(logistic(ratio, toxicityCenter, toxicitySteepness))
}

func (e *Extractor) stressIndicators(words []string, lowered string) []string {
	seen := make(map[string]struct{})

	for _, w := range words {
		if e.lex.StressTerms.Contains(w) {
			seen[w] = struct{}{}
		}
	}
	for _, phrase := range e.lex.StressPhrases {
		if strings.Contains(lowered, phrase) {
			seen[strings.ReplaceAll(phrase, " ", "_")] = struct{}{}
		}
	}

	indicators := make([]string, 0, len(seen))
	for indicator := range seen {
		indicators = append(indicators, indicator)
	}
	// sorted so identical inputs yield identical output
	sort.Strings(indicators)
	return indicators
}

func (e *Extractor) safetyFlags(lowered string) []string {
	flags := make([]string, 0, len(SafetyCategories))

	for _, category := range SafetyCategories {
		for _, keyword := range e.lex.Safety[category] {
			if strings.Contains(lowered, keyword) {
				flags = append(flags, category)
				break
			}
		}
	}
	return flags
}

// SelfTest runs the extractor on a fixed synthetic sentence and checks the
// output shape and bounds. It is a health probe only and never sits on the
// production path.
func (e *Extractor) SelfTest() error {
	signals := e.Analyze("I feel stressed and worried about my exam deadline")

	sum := signals.Sentiment.Positive + signals.Sentiment.Negative + signals.Sentiment.Neutral
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("[TextExtractor] sentiment triplet sums to %f, want 1", sum)
	}
	if signals.ToxicityScore < 0 || signals.ToxicityScore > 1 {
		return fmt.Errorf("[TextExtractor] toxicity score %f out of [0,1]", signals.ToxicityScore)
	}
	if len(signals.StressIndicators) == 0 {
		return fmt.Errorf("[TextExtractor] expected stress indicators for synthetic input")
	}
	return nil
}

// Capabilities describes the extractor for introspection endpoints.
type Capabilities struct {
	Type              string   `json:"type"`
	LexiconCategories []string `json:"lexicon_categories"`
	SafetyMatching    string   `json:"safety_matching"`
	Languages         []string `json:"languages"`
}

func (e *Extractor) Capabilities() Capabilities {
	return Capabilities{
		Type: "lexicon_rule_based",
		LexiconCategories: []string{
			"sentiment_positive", "sentiment_negative",
			"emotion", "stress_terms", "stress_phrases", "safety", "toxicity",
		},
		// unanchored substring matching can over-trigger on embedded
		// substrings; surfaced here so operators can monitor it
		SafetyMatching: "substring",
		Languages:      []string{"en"},
	}
}

// tokenize splits on whitespace and trims surrounding punctuation from each
// token, so "exam," matches the lexicon entry "exam". Interior punctuation
// (contractions, hyphens) stays.
func tokenize(lowered string) []string {
	fields := strings.Fields(lowered)
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		word := strings.TrimFunc(field, unicode.IsPunct)
		if word != "" {
			words = append(words, word)
		}
	}
	return words
}

func countHits(words []string, set WordSet) int {
	hits := 0
	for _, w := range words {
		if set.Contains(w) {
			hits++
		}
	}
	return hits
}

func logistic(x, center, steepness float64) float64 {
	return 1 / (1 + math.Exp(-steepness*(x-center)))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

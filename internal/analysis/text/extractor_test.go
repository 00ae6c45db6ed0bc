package text

import (
	"math"
	"testing"
)

func TestSentimentTripletSumsToOne(t *testing.T) {
	e := NewExtractor()

	inputs := []string{
		"I am so happy and excited today",
		"everything is terrible and awful and I hate it",
		"the meeting is on tuesday",
		"great awful great awful neutral words here",
	}

	for _, input := range inputs {
		signals := e.Analyze(input)
		s := signals.Sentiment
		sum := s.Positive + s.Negative + s.Neutral
		if math.Abs(sum-1) > 1e-6 {
			t.Errorf("sentiment sum for %q = %f, want 1", input, sum)
		}
	}
}

func TestSentimentEmptyInput(t *testing.T) {
	e := NewExtractor()

	signals := e.Analyze("")
	s := signals.Sentiment
	if s.Positive != 0.5 || s.Negative != 0.5 || s.Neutral != 0.0 {
		t.Errorf("empty input sentiment = %+v, want {0.5 0.5 0}", s)
	}
	if signals.ToxicityScore != 0.0 {
		t.Errorf("empty input toxicity = %f, want 0", signals.ToxicityScore)
	}
}

func TestStressIndicatorScenario(t *testing.T) {
	e := NewExtractor()

	signals := e.Analyze("I have a deadline and exam, feeling stressed")

	want := map[string]bool{"deadline": false, "exam": false, "stressed": false}
	for _, indicator := range signals.StressIndicators {
		if _, ok := want[indicator]; ok {
			want[indicator] = true
		}
	}
	for indicator, found := range want {
		if !found {
			t.Errorf("stress indicators missing %q, got %v", indicator, signals.StressIndicators)
		}
	}
}

func TestTokenizeTrimsSurroundingPunctuation(t *testing.T) {
	e := NewExtractor()

	signals := e.Analyze("deadline, exam! (stressed)")

	got := make(map[string]bool)
	for _, indicator := range signals.StressIndicators {
		got[indicator] = true
	}
	for _, want := range []string{"deadline", "exam", "stressed"} {
		if !got[want] {
			t.Errorf("stress indicators missing %q, got %v", want, signals.StressIndicators)
		}
	}
}

func TestStressIndicatorsDeduplicated(t *testing.T) {
	e := NewExtractor()

	signals := e.Analyze("stressed stressed stressed about the exam exam")

	seen := make(map[string]int)
	for _, indicator := range signals.StressIndicators {
		seen[indicator]++
	}
	for indicator, n := range seen {
		if n > 1 {
			t.Errorf("indicator %q appears %d times, want 1", indicator, n)
		}
	}
}

func TestStressPhrasesUnderscored(t *testing.T) {
	e := NewExtractor()

	signals := e.Analyze("there is just too much work and no sleep lately")

	got := make(map[string]bool)
	for _, indicator := range signals.StressIndicators {
		got[indicator] = true
	}
	if !got["too_much_work"] {
		t.Errorf("expected too_much_work in %v", signals.StressIndicators)
	}
	if !got["no_sleep"] {
		t.Errorf("expected no_sleep in %v", signals.StressIndicators)
	}
}

func TestSafetyFlagsOnePerCategory(t *testing.T) {
	e := NewExtractor()

	// two crisis keywords, one violence keyword
	signals := e.Analyze("this is an emergency, a real crisis, we might fight")

	counts := make(map[string]int)
	for _, flag := range signals.SafetyFlags {
		counts[flag]++
	}
	if counts[SafetyCrisis] != 1 {
		t.Errorf("crisis flag count = %d, want 1", counts[SafetyCrisis])
	}
	if counts[SafetyViolence] != 1 {
		t.Errorf("violence flag count = %d, want 1", counts[SafetyViolence])
	}
	if counts[SafetySelfHarm] != 0 {
		t.Errorf("self_harm flag count = %d, want 0", counts[SafetySelfHarm])
	}
}

func TestSafetyFlagsSubstringMatch(t *testing.T) {
	e := NewExtractor()

	// "kill" is embedded in "skills"; unanchored matching triggers anyway
	signals := e.Analyze("working on my skills")
	found := false
	for _, flag := range signals.SafetyFlags {
		if flag == SafetyViolence {
			found = true
		}
	}
	if !found {
		t.Errorf("expected violence flag from embedded substring, got %v", signals.SafetyFlags)
	}
}

func TestToxicitySparseHitsNonZero(t *testing.T) {
	e := NewExtractor()

	signals := e.Analyze("you are an idiot but the rest of this long sentence is fine")
	if signals.ToxicityScore <= 0 {
		t.Errorf("toxicity = %f, want > 0 for a single hit", signals.ToxicityScore)
	}
	if signals.ToxicityScore > 1 {
		t.Errorf("toxicity = %f, want <= 1", signals.ToxicityScore)
	}

	clean := e.Analyze("what a wonderful sunny day")
	if clean.ToxicityScore >= signals.ToxicityScore {
		t.Errorf("clean toxicity %f should be below toxic toxicity %f",
			clean.ToxicityScore, signals.ToxicityScore)
	}
}

func TestToxicLexiconPhraseEntries(t *testing.T) {
	lex := DefaultLexicons()
	if !lex.Toxic.Contains("terrible person") {
		t.Errorf("toxic lexicon missing phrase entry %q", "terrible person")
	}
	if !lex.Toxic.Contains("kill yourself") {
		t.Errorf("toxic lexicon missing phrase entry %q", "kill yourself")
	}

	// token matching never produces multi-word tokens, so the phrase
	// entries cannot raise the score on their own
	e := NewExtractor()
	withPhrase := e.Analyze("you are a terrible person")
	plain := e.Analyze("you are a pleasant person")
	if withPhrase.ToxicityScore != plain.ToxicityScore {
		t.Errorf("phrase entry changed token-level toxicity: %f vs %f",
			withPhrase.ToxicityScore, plain.ToxicityScore)
	}
}

func TestEmotionScoresIndependent(t *testing.T) {
	e := NewExtractor()

	signals := e.Analyze("sad and scared and angry")
	emotions := signals.Emotion

	if emotions.Sadness <= 0 {
		t.Errorf("sadness = %f, want > 0", emotions.Sadness)
	}
	if emotions.Fear <= 0 {
		t.Errorf("fear = %f, want > 0", emotions.Fear)
	}
	if emotions.Anger <= 0 {
		t.Errorf("anger = %f, want > 0", emotions.Anger)
	}

	for name, v := range map[string]float64{
		"joy": emotions.Joy, "sadness": emotions.Sadness, "anger": emotions.Anger,
		"fear": emotions.Fear, "surprise": emotions.Surprise, "disgust": emotions.Disgust,
	} {
		if v < 0 || v > 1 {
			t.Errorf("emotion %s = %f out of [0,1]", name, v)
		}
	}
}

func TestSwappableLexicons(t *testing.T) {
	lex := DefaultLexicons()
	lex.StressTerms = NewWordSet("gerbil")
	e := NewExtractorWithLexicons(lex)

	signals := e.Analyze("my gerbil is stressed")
	got := make(map[string]bool)
	for _, indicator := range signals.StressIndicators {
		got[indicator] = true
	}
	if !got["gerbil"] {
		t.Errorf("custom lexicon term not detected: %v", signals.StressIndicators)
	}
	if got["stressed"] {
		t.Errorf("default term detected after lexicon swap: %v", signals.StressIndicators)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	e := NewExtractor()
	input := "stressed about finals, no sleep, feeling sad and worried"

	first := e.Analyze(input)
	for i := 0; i < 5; i++ {
		next := e.Analyze(input)
		if len(next.StressIndicators) != len(first.StressIndicators) {
			t.Fatalf("indicator count changed between runs")
		}
		for j := range next.StressIndicators {
			if next.StressIndicators[j] != first.StressIndicators[j] {
				t.Errorf("indicator order changed: %v vs %v",
					next.StressIndicators, first.StressIndicators)
			}
		}
	}
}

func TestSelfTest(t *testing.T) {
	if err := NewExtractor().SelfTest(); err != nil {
		t.Errorf("self test failed: %v", err)
	}
}

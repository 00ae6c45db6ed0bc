package text

// WordSet is a lexicon category: a fixed set of lowercase single tokens.
type WordSet map[string]struct{}

func NewWordSet(words ...string) WordSet {
	set := make(WordSet, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func (ws WordSet) Contains(word string) bool {
	_, ok := ws[word]
	return ok
}

// Emotion category names, in reporting order.
const (
	EmotionJoy      = "joy"
	EmotionSadness  = "sadness"
	EmotionAnger    = "anger"
	EmotionFear     = "fear"
	EmotionSurprise = "surprise"
	EmotionDisgust  = "disgust"
)

// Safety flag categories, in evaluation order.
const (
	SafetySelfHarm = "self_harm"
	SafetyViolence = "violence"
	SafetyCrisis   = "crisis"
)

var SafetyCategories = []string{SafetySelfHarm, SafetyViolence, SafetyCrisis}

// Lexicons holds every keyword table the extractor consumes. The tables are
// plain data: swapping a lexicon changes detection coverage without touching
// any algorithm code.
type Lexicons struct {
	Positive WordSet
	Negative WordSet

	// Emotions maps each of the six category names to its keyword set.
	Emotions map[string]WordSet

	// StressTerms match single tokens; StressPhrases match the full
	// lowercased text and are reported with spaces replaced by underscores.
	StressTerms   WordSet
	StressPhrases []string

	// Safety maps a category to substrings that raise its flag. Matching is
	// unanchored: embedded substrings also trigger.
	Safety map[string][]string

	Toxic WordSet
}

// DefaultLexicons returns the built-in English tables.
func DefaultLexicons() Lexicons {
	return Lexicons{
		Positive: NewWordSet(
			"happy", "joy", "excited", "great", "awesome", "wonderful",
			"amazing", "fantastic", "excellent", "good", "love", "like",
		),
		Negative: NewWordSet(
			"sad", "angry", "frustrated", "terrible", "awful", "hate",
			"depressed", "anxious", "worried", "stressed", "bad", "horrible",
		),
		Emotions: map[string]WordSet{
			EmotionJoy:      NewWordSet("happy", "joy", "excited", "cheerful", "delighted"),
			EmotionSadness:  NewWordSet("sad", "depressed", "down", "melancholy", "gloomy"),
			EmotionAnger:    NewWordSet("angry", "mad", "furious", "irritated", "annoyed"),
			EmotionFear:     NewWordSet("scared", "afraid", "terrified", "anxious", "worried"),
			EmotionSurprise: NewWordSet("surprised", "shocked", "amazed", "astonished"),
			EmotionDisgust:  NewWordSet("disgusted", "revolted", "repulsed", "sickened"),
		},
		StressTerms: NewWordSet(
			"overwhelmed", "stressed", "anxious", "panic", "exhausted",
			"burnout", "pressure", "deadline", "exam", "test", "finals",
			"assignment", "project", "workload", "sleepless", "tired",
		),
		StressPhrases: []string{
			"too much work", "can't handle", "breaking point",
			"so tired", "no sleep", "deadline approaching",
		},
		Safety: map[string][]string{
			SafetySelfHarm: {"hurt myself", "end it all", "not worth living", "suicide"},
			SafetyViolence: {"kill", "hurt someone", "violence", "fight"},
			SafetyCrisis:   {"emergency", "crisis", "help me", "desperate"},
		},
		Toxic: NewWordSet(
			"hate", "stupid", "idiot", "loser", "worthless", "pathetic",
			"disgusting",
			// multi-word entries; never hit by single-token matching
			"terrible person", "kill yourself",
		),
	}
}

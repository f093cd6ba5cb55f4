package classifier

// Lexicon holds the fixed keyword and phrase lists the classifier
// scores against. The default lists target coordinated narratives
// around India and include Devanagari variants; swap in a different
// Lexicon to monitor another topic.
type Lexicon struct {
	PositiveWords []string
	NegativeWords []string
	ProPhrases    []string
	AntiPhrases   []string
	// TopicKeywords mark texts that talk about the monitored topic
	// without taking a stance.
	TopicKeywords []string
}

// DefaultLexicon returns the built-in India-focused lexicon.
func DefaultLexicon() Lexicon {
	return Lexicon{
		PositiveWords: []string{
			"good", "great", "excellent", "amazing", "wonderful",
			"love", "like", "happy", "proud",
		},
		NegativeWords: []string{
			"bad", "terrible", "awful", "hate", "dislike",
			"angry", "sad", "disappointed",
		},
		ProPhrases: []string{
			"proud india", "love india", "support india", "incredible india",
			"digital india", "make in india", "atmanirbhar bharat", "new india",
			"rising india", "shining india", "india superpower", "unity in diversity",
			"india achievement", "indian innovation", "india progress", "indian success",
			"india development", "indian scientist", "indian technology", "indian space mission",
			"indian culture rich", "indian heritage", "indian tradition beautiful",
			"proud indian", "jai hind",
			"भारत महान", "जय हिन्द", "वन्दे मातरम्", "सत्यमेव जयते",
			"भारत की प्रगति", "भारतीय संस्कृति",
		},
		AntiPhrases: []string{
			"boycott india", "anti india", "hate india", "destroy india", "fake india",
			"india terrorist", "india fascist", "modi dictator",
			"break india", "balkanize india",
			"boycott indian products", "indian economy collapse", "rupee crash",
			"indian scam", "bollywood propaganda",
			"indian democracy fake", "indian election rigged", "indian media sold",
			"propaganda india", "corrupt india", "evil india",
			"boycottindia", "antiindia", "fakeindia",
			"भारत विरोधी", "मोदी तानाशाह", "भारत तोड़ो",
		},
		TopicKeywords: []string{"india", "भारत"},
	}
}

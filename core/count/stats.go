package count

// Stats is the full statistics record for one text snapshot.
type Stats struct {
	Characters         int       `json:"characters" yaml:"characters"`
	Words              int       `json:"words" yaml:"words"`
	Lines              int       `json:"lines" yaml:"lines"`
	Sentences          int       `json:"sentences" yaml:"sentences"`
	Paragraphs         int       `json:"paragraphs" yaml:"paragraphs"`
	Vowels             int       `json:"vowels" yaml:"vowels"`
	Consonants         int       `json:"consonants" yaml:"consonants"`
	Digits             int       `json:"digits" yaml:"digits"`
	Uppercase          int       `json:"uppercase" yaml:"uppercase"`
	Lowercase          int       `json:"lowercase" yaml:"lowercase"`
	Spaces             int       `json:"spaces" yaml:"spaces"`
	Punctuation        int       `json:"punctuation" yaml:"punctuation"`
	CharacterFrequency Frequency `json:"character_frequency" yaml:"character_frequency"`
	WordFrequency      Frequency `json:"word_frequency" yaml:"word_frequency"`
}

// Analyze runs every counter and both frequency aggregators over text.
// Each field is computed independently from the same input; no field is
// derived from another. Word frequency is case-insensitive.
func Analyze(text string) Stats {
	return Stats{
		Characters:         Characters(text),
		Words:              Words(text),
		Lines:              Lines(text),
		Sentences:          Sentences(text),
		Paragraphs:         Paragraphs(text),
		Vowels:             Vowels(text),
		Consonants:         Consonants(text),
		Digits:             Digits(text),
		Uppercase:          Uppercase(text),
		Lowercase:          Lowercase(text),
		Spaces:             Spaces(text),
		Punctuation:        Punctuation(text),
		CharacterFrequency: CharacterFrequency(text),
		WordFrequency:      WordFrequency(text, false),
	}
}

// AnalyzeOptional is Analyze for a text that may be absent. A nil text
// yields a zero record with empty (non-nil) frequency maps; unlike an
// empty string it reports zero lines.
func AnalyzeOptional(text *string) Stats {
	if text == nil {
		return Stats{
			CharacterFrequency: Frequency{},
			WordFrequency:      Frequency{},
		}
	}
	return Analyze(*text)
}

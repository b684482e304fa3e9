package ai

// IPA is the pronunciation in UK and US variants.
type IPA struct {
	UK string `json:"uk"`
	US string `json:"us"`
}

// Meaning pairs a part of speech with the Vietnamese translation.
type Meaning struct {
	PartOfSpeech string `json:"partOfSpeech"`
	Vietnamese   string `json:"vietnamese"`
}

// Usage carries examples and common patterns for the word.
type Usage struct {
	Examples        []string `json:"examples"`
	Collocations    []string `json:"collocations"`
	GrammarPatterns []string `json:"grammarPatterns"`
	CommonMistakes  string   `json:"commonMistakes"`
}

// CulturalContext explains origin and register of the word.
type CulturalContext struct {
	Etymology                    string   `json:"etymology"`
	CulturalSignificance         string   `json:"culturalSignificance"`
	RelatedExpressions           []string `json:"relatedExpressions"`
	NuancesForVietnameseLearners string   `json:"nuancesForVietnameseLearners"`
}

// Entry is the structured document the model returns for one word.
type Entry struct {
	Word            string          `json:"word"`
	IPA             IPA             `json:"ipa"`
	Meaning         Meaning         `json:"meaning"`
	Usage           Usage           `json:"usage"`
	CulturalContext CulturalContext `json:"culturalContext"`
}

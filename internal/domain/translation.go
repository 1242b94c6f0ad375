package domain

// Translation sources reported to clients.
const (
	SourceDictionary = "dictionary"
	SourceYandex     = "yandex"
)

// Translation is the result of a translate request
type Translation struct {
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	TargetLanguage string `json:"targetLanguage"`
	Source         string `json:"source"`
}

// GeneratedText is a story built from the user's learned words
type GeneratedText struct {
	EnglishText string            `json:"englishText"`
	RussianText string            `json:"russianText"`
	Words       map[string]string `json:"words"`
}

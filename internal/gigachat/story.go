package gigachat

import (
	"fmt"
	"sort"
	"strings"

	"vocabler/internal/domain"
)

// Section markers the model is instructed to emit.
const (
	englishStart = "===ENGLISH_TEXT_START==="
	englishEnd   = "===ENGLISH_TEXT_END==="
	russianStart = "===RUSSIAN_TEXT_START==="
	russianEnd   = "===RUSSIAN_TEXT_END==="
	wordsStart   = "===USED_WORDS_START==="
	wordsEnd     = "===USED_WORDS_END==="
)

// BuildPrompt produces the generation prompt for the given
// word-translation pairs. Words are sorted so the prompt is stable for
// a given input.
func BuildPrompt(words map[string]string) string {
	keys := make([]string, 0, len(words))
	for w := range words {
		keys = append(keys, w)
	}
	sort.Strings(keys)

	var list strings.Builder
	for _, w := range keys {
		fmt.Fprintf(&list, "- %s: %s\n", w, words[w])
	}

	return fmt.Sprintf(`Compose a short story in English (3-5 sentences) that uses every word from the list below, then translate the story into Russian.

Words:
%s
Format your answer exactly like this, keeping the markers:

%s
<the English story>
%s
%s
<the Russian translation>
%s
%s
<one "word: translation" line per used word>
%s`,
		list.String(),
		englishStart, englishEnd,
		russianStart, russianEnd,
		wordsStart, wordsEnd,
	)
}

// ParseStory extracts the three delimited sections from the model
// output. A missing marker pair makes the whole response malformed.
func ParseStory(content string) (*domain.GeneratedText, error) {
	english, ok := extractSection(content, englishStart, englishEnd)
	if !ok {
		return nil, fmt.Errorf("english section: %w", domain.ErrMalformedResponse)
	}
	russian, ok := extractSection(content, russianStart, russianEnd)
	if !ok {
		return nil, fmt.Errorf("russian section: %w", domain.ErrMalformedResponse)
	}
	wordsSection, ok := extractSection(content, wordsStart, wordsEnd)
	if !ok {
		return nil, fmt.Errorf("used words section: %w", domain.ErrMalformedResponse)
	}

	return &domain.GeneratedText{
		EnglishText: english,
		RussianText: russian,
		Words:       parseWordLines(wordsSection),
	}, nil
}

func extractSection(content, start, end string) (string, bool) {
	from := strings.Index(content, start)
	if from == -1 {
		return "", false
	}
	from += len(start)

	to := strings.Index(content[from:], end)
	if to == -1 {
		return "", false
	}

	return strings.TrimSpace(content[from : from+to]), true
}

// parseWordLines reads "word: translation" lines, skipping anything
// that does not match.
func parseWordLines(section string) map[string]string {
	words := make(map[string]string)
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		word, translation, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		word = strings.TrimSpace(word)
		translation = strings.TrimSpace(translation)
		if word == "" || translation == "" {
			continue
		}
		words[word] = translation
	}
	return words
}

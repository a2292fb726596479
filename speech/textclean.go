package speech

import (
	"regexp"
	"strings"

	"github.com/neurosnap/sentences"
)

var (
	htmlTagRE = regexp.MustCompile(`<[^>]*>`)
	// markdown markers that make TTS read garbage aloud
	markupReplacer = strings.NewReplacer(
		"*", "",
		"#", "",
		"_", "",
		"~", "",
		"`", "",
		"[", "",
		"]", "",
	)
)

// cleanText strips markup that is not suitable for speech.
func cleanText(text string) string {
	text = markupReplacer.Replace(text)
	text = htmlTagRE.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// splitChunks breaks an utterance into sentence-sized pieces. Each
// piece boundary is a cancellation checkpoint.
func splitChunks(tokenizer sentences.SentenceTokenizer, text string) []string {
	if tokenizer == nil {
		return []string{text}
	}
	sents := tokenizer.Tokenize(text)
	if len(sents) == 0 {
		return []string{text}
	}
	chunks := make([]string, 0, len(sents))
	for _, s := range sents {
		t := strings.TrimSpace(s.Text)
		if t != "" {
			chunks = append(chunks, t)
		}
	}
	return chunks
}

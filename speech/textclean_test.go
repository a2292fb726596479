package speech

import (
	"testing"

	"github.com/neurosnap/sentences/english"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello world", "Hello world"},
		{"**Bold text**", "Bold text"},
		{"*Italic text*", "Italic text"},
		{"# Header", "Header"},
		{"_Underlined text_", "Underlined text"},
		{"~Strikethrough text~", "Strikethrough text"},
		{"`Code text`", "Code text"},
		{"[Link text](url)", "Link text(url)"},
		{"<html>tags</html>", "tags"},
		{"  Trailing spaces  ", "Trailing spaces"},
		{"", ""},
		{"***", ""},
	}
	for _, test := range tests {
		result := cleanText(test.input)
		if result != test.expected {
			t.Errorf("cleanText(%q) = %q; expected %q", test.input, result, test.expected)
		}
	}
}

func TestSplitChunks(t *testing.T) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		t.Fatalf("failed to build tokenizer: %v", err)
	}
	chunks := splitChunks(tokenizer, "Hello there. How are you? Fine.")
	expected := []string{"Hello there.", "How are you?", "Fine."}
	if len(chunks) != len(expected) {
		t.Fatalf("got %d chunks, expected %d: %v", len(chunks), len(expected), chunks)
	}
	for i := range expected {
		if chunks[i] != expected[i] {
			t.Errorf("chunk %d = %q; expected %q", i, chunks[i], expected[i])
		}
	}
	// no tokenizer means the whole utterance is one checkpoint
	whole := splitChunks(nil, "One. Two.")
	if len(whole) != 1 || whole[0] != "One. Two." {
		t.Errorf("nil tokenizer should return the text whole, got %v", whole)
	}
}

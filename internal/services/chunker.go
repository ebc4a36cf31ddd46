package services

import (
	"strings"
	"unicode/utf8"
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 100
)

// TextChunker splits long insight texts so each embedding stays focused.
type TextChunker interface {
	Chunk(text string) []string
}

type textChunker struct {
	maxSize int
	overlap int
}

func NewTextChunker(maxSize, overlap int) TextChunker {
	if maxSize <= 0 {
		maxSize = defaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxSize {
		overlap = maxSize / 4
	}
	return &textChunker{maxSize: maxSize, overlap: overlap}
}

// Chunk packs paragraphs into chunks of roughly maxSize runes. Paragraphs that
// are too long on their own are packed sentence by sentence. Each new chunk
// starts with the last overlap runes of the previous one, so a chunk can reach
// maxSize plus the overlap and its separator. A single sentence longer than
// maxSize is kept whole.
func (tc *textChunker) Chunk(text string) []string {
	var (
		chunks  []string
		current strings.Builder
	)

	add := func(piece, sep string) {
		if current.Len() > 0 && utf8.RuneCountInString(current.String())+len(sep)+utf8.RuneCountInString(piece) > tc.maxSize {
			prev := current.String()
			chunks = append(chunks, prev)
			current.Reset()
			if tail := lastRunes(prev, tc.overlap); tail != "" {
				current.WriteString(tail)
				current.WriteString(sep)
			}
		} else if current.Len() > 0 {
			current.WriteString(sep)
		}
		current.WriteString(piece)
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= tc.maxSize {
			add(para, "\n\n")
			continue
		}

		for _, sentence := range splitSentences(para) {
			add(sentence, " ")
		}
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// splitSentences keeps the terminating punctuation with each sentence.
func splitSentences(text string) []string {
	var (
		sentences []string
		start     int
	)
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}

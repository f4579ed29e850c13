package IO

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/registry"
	tk "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/normalizer"
	"github.com/sugarme/tokenizer/pretokenizer"
	"golang.org/x/text/unicode/norm"

	"github.com/manningwu07/CBOW/params"
)

// StopWords decides which normalized tokens are dropped before encoding.
type StopWords interface {
	IsStopWord(tok string) bool
}

// stopSet is a bleve token map: one lowercase word per key.
type stopSet analysis.TokenMap

func (s stopSet) IsStopWord(tok string) bool {
	return s[tok]
}

// EnglishStopWords returns bleve's English stop-word list.
func EnglishStopWords() (StopWords, error) {
	tm, err := registry.NewCache().TokenMapNamed(en.StopName)
	if err != nil {
		return nil, fmt.Errorf("error loading english stop words: %w", err)
	}
	return stopSet(tm), nil
}

// NewStopWords builds a list from words, lowercased.
func NewStopWords(words ...string) StopWords {
	tm := analysis.NewTokenMap()
	for _, w := range words {
		tm.AddToken(strings.ToLower(w))
	}
	return stopSet(tm)
}

// LoadStopWordsFile reads one word per line; text after '#' or '|' is a comment.
func LoadStopWordsFile(path string) (StopWords, error) {
	tm := analysis.NewTokenMap()
	if err := tm.LoadFile(path); err != nil {
		return nil, fmt.Errorf("error reading stop words %s: %w", path, err)
	}
	lower := analysis.NewTokenMap()
	for w := range tm {
		lower.AddToken(strings.ToLower(w))
	}
	return stopSet(lower), nil
}

// Stripping is off in the lowercaser; whitespace belongs to the splitter.
var (
	lowercaser = normalizer.NewDefaultNormalizer(normalizer.WithStrip(false))
	splitter   = pretokenizer.NewWhitespaceSplit()
)

// Normalize applies NFKC, lowercases, and deletes every punctuation or
// symbol rune. Deleted runes are not replaced, so "data-science" becomes
// "datascience". Other whitespace runes become a plain space.
func Normalize(raw string) string {
	// compose with x/text: the tokenizer's NFKC leaves combining marks split
	n, err := lowercaser.Normalize(normalizer.NewNormalizedFrom(norm.NFKC.String(raw)))
	if err != nil {
		// lowercasing never fails
		panic(err)
	}
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			return -1
		case unicode.IsSpace(r):
			return ' '
		}
		return r
	}, n.GetNormalized())
}

// TokenizeEN normalizes raw and splits it on whitespace, dropping stop
// words. stop may be nil.
func TokenizeEN(raw string, stop StopWords) []string {
	s := Normalize(raw)
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	pre, err := splitter.PreTokenize(tk.NewPreTokenizedString(s))
	if err != nil {
		panic(err)
	}
	splits := pre.GetSplits(normalizer.NormalizedTarget, tk.Byte)
	out := make([]string, 0, len(splits))
	for _, sp := range splits {
		if sp.Value == "" || (stop != nil && stop.IsStopWord(sp.Value)) {
			continue
		}
		out = append(out, sp.Value)
	}
	return out
}

// ParseCorpus builds the vocabulary in order of first occurrence and the
// id sequence for raw. Empty input gives an empty vocabulary and corpus.
func ParseCorpus(raw string, stop StopWords) params.Corpus {
	toks := TokenizeEN(raw, stop)
	c := params.Corpus{
		Vocab: params.NewVocabulary(),
		IDs:   make([]int, 0, len(toks)),
	}
	for _, tok := range toks {
		c.IDs = append(c.IDs, c.Vocab.Add(tok))
	}
	return c
}

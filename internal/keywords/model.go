// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keywords

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jdkato/prose/v2"
	"github.com/neurosnap/sentences"
	sentencesdata "github.com/neurosnap/sentences/data"
)

var (
	// punktOnce guards the one-time load of the English Punkt model.
	punktOnce sync.Once
	// punkt is the process-wide sentence tokenizer.
	punkt *sentences.DefaultSentenceTokenizer
	// punktErr caches any load error so it is reported on every call.
	punktErr error
)

// loadPunkt returns the shared English sentence tokenizer, loading the
// Punkt training data on first use.
func loadPunkt() (*sentences.DefaultSentenceTokenizer, error) {
	punktOnce.Do(func() {
		b, err := sentencesdata.Asset("data/english.json")
		if err != nil {
			punktErr = fmt.Errorf("load english punkt data: %w", err)
			return
		}
		training, err := sentences.LoadTraining(b)
		if err != nil {
			punktErr = fmt.Errorf("parse english punkt data: %w", err)
			return
		}
		punkt = sentences.NewSentenceTokenizer(training)
	})
	if punktErr != nil {
		return nil, punktErr
	}
	if punkt == nil {
		return nil, fmt.Errorf("english sentence tokenizer is nil")
	}
	return punkt, nil
}

var (
	taggerOnce sync.Once
	// tagger holds the averaged-perceptron part-of-speech model.
	tagger    *prose.Model
	taggerErr error
)

// loadTagger returns the shared part-of-speech model. prose builds its
// default model while parsing a document, so an empty document is parsed
// once and its model kept for every later call.
func loadTagger() (*prose.Model, error) {
	taggerOnce.Do(func() {
		doc, err := prose.NewDocument("",
			prose.WithSegmentation(false),
			prose.WithExtraction(false))
		if err != nil {
			taggerErr = fmt.Errorf("load part-of-speech model: %w", err)
			return
		}
		tagger = doc.Model
	})
	if taggerErr != nil {
		return nil, taggerErr
	}
	if tagger == nil {
		return nil, fmt.Errorf("part-of-speech model is nil")
	}
	return tagger, nil
}

// taggedWord is one token of a sentence with its Penn Treebank tag.
type taggedWord struct {
	text string
	tag  string
}

// tagSentence tokenizes and tags one sentence with the shared model.
func tagSentence(sentence string) ([]taggedWord, error) {
	model, err := loadTagger()
	if err != nil {
		return nil, err
	}
	doc, err := prose.NewDocument(sentence,
		prose.UsingModel(model),
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("tag sentence: %w", err)
	}
	tokens := doc.Tokens()
	words := make([]taggedWord, len(tokens))
	for i, tok := range tokens {
		words[i] = taggedWord{text: tok.Text, tag: tok.Tag}
	}
	return words, nil
}

// Warm loads the sentence and part-of-speech models ahead of the first
// extraction, so a long-running server pays the cost at startup.
func Warm() error {
	if _, err := loadPunkt(); err != nil {
		return err
	}
	_, err := loadTagger()
	return err
}

// splitSentences splits text into sentences. Without a model the whole
// text is treated as one sentence.
func splitSentences(text string) []string {
	tok, err := loadPunkt()
	if err != nil {
		return []string{text}
	}
	raw := tok.Tokenize(text)
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keywords suggests refinement phrases for a research topic.
//
// The topic is split into sentences with a Punkt model, each sentence is
// tagged with an averaged-perceptron part-of-speech model, and the noun
// phrases are read off the tags: runs of adjectives, numbers and nouns that
// end in a noun. Both models are loaded once per process. If the tagger
// cannot be loaded, phrases fall back to runs of words between stopwords.
package keywords

import (
	"strings"
	"unicode"
)

// MaxCandidates is the most suggestions Extract returns.
const MaxCandidates = 5

// Extract returns up to MaxCandidates lowercased, trimmed, deduplicated
// noun phrases of topic in order of first appearance. It never returns nil.
func Extract(topic string) []string {
	out := []string{}
	if strings.TrimSpace(topic) == "" {
		return out
	}

	seen := make(map[string]bool)
	for _, sentence := range splitSentences(topic) {
		var chunks []string
		if words, err := tagSentence(sentence); err == nil {
			chunks = chunkTagged(words)
		} else {
			chunks = chunkByStopwords(sentence)
		}

		for _, chunk := range chunks {
			if seen[chunk] {
				continue
			}
			seen[chunk] = true
			out = append(out, chunk)
			if len(out) == MaxCandidates {
				return out
			}
		}
	}
	return out
}

// Select returns the first n candidates, or all of them when n exceeds the
// list. n <= 0 selects none.
func Select(candidates []string, n int) []string {
	if n <= 0 {
		return []string{}
	}
	if n > len(candidates) {
		n = len(candidates)
	}
	return append([]string{}, candidates[:n]...)
}

// Penn Treebank tags that head a noun phrase.
var headTags = map[string]bool{
	"NN": true, "NNS": true, "NNP": true, "NNPS": true, "FW": true,
}

// Penn Treebank tags that may precede the head inside a noun phrase.
var modifierTags = map[string]bool{
	"JJ": true, "JJR": true, "JJS": true, "CD": true,
}

// gerundAfter lists the tags after which a gerund is read as a noun
// ("machine learning", "deep learning") rather than as a verb.
var gerundAfter = map[string]bool{
	"NN": true, "NNP": true, "JJ": true, "JJR": true, "JJS": true,
}

// chunkTagged returns the noun phrases of one tagged sentence. A phrase is
// cut after its last head word, so trailing modifiers are dropped and a run
// without any head yields nothing.
func chunkTagged(words []taggedWord) []string {
	var chunks []string
	var current []string
	lastHead := -1
	prevTag := ""

	flush := func() {
		if lastHead >= 0 {
			chunks = append(chunks, strings.Join(current[:lastHead+1], " "))
		}
		current = current[:0]
		lastHead = -1
	}

	for _, w := range words {
		word := strings.ToLower(strings.TrimFunc(w.text, isPunct))
		switch {
		case word == "" || stopwords[word]:
			flush()
		case headTags[w.tag]:
			current = append(current, word)
			lastHead = len(current) - 1
		case w.tag == "VBG" && len(current) > 0 && gerundAfter[prevTag]:
			current = append(current, word)
			lastHead = len(current) - 1
		case modifierTags[w.tag]:
			current = append(current, word)
		default:
			flush()
		}
		prevTag = w.tag
	}
	flush()
	return chunks
}

// chunkByStopwords splits one sentence into runs of words between
// stopwords and punctuation.
func chunkByStopwords(sentence string) []string {
	var chunks []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = current[:0]
		}
	}

	for _, raw := range strings.Fields(sentence) {
		leading, core, trailing := splitPunct(raw)
		if leading {
			flush()
		}
		word := strings.ToLower(core)
		switch {
		case word == "":
			flush()
		case stopwords[word]:
			flush()
		default:
			current = append(current, word)
		}
		if trailing {
			flush()
		}
	}
	flush()
	return chunks
}

func isPunct(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// splitPunct trims punctuation from both ends of a whitespace token and
// reports whether any was removed on either side. Inner hyphens and
// apostrophes ("state-of-the-art", "bayes'") are kept.
func splitPunct(tok string) (leading bool, core string, trailing bool) {
	core = strings.TrimLeftFunc(tok, isPunct)
	leading = len(core) != len(tok)
	trimmed := strings.TrimRightFunc(core, isPunct)
	trailing = len(trimmed) != len(core)
	return leading, trimmed, trailing
}

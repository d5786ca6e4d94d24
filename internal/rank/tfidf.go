// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"math"
	"regexp"
	"sort"

	"github.com/pdiddy/paper-finder/internal/textnorm"
)

// tokenPattern matches runs of two or more word characters, the same
// tokens scikit-learn's TfidfVectorizer extracts by default.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lowercases text, folds diacritics the way documents are
// normalized, and splits it into vectorizer tokens.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(textnorm.Fold(text), -1)
}

// Term is one non-zero weight of a Vector.
type Term struct {
	Index  int
	Weight float64
}

// Vector is a sparse, L2-normalized TF-IDF row. Terms are sorted by
// vocabulary index so every computation over it is deterministic.
type Vector []Term

// Weight returns the weight of vocabulary index idx, or 0.
func (v Vector) Weight(idx int) float64 {
	i := sort.Search(len(v), func(i int) bool { return v[i].Index >= idx })
	if i < len(v) && v[i].Index == idx {
		return v[i].Weight
	}
	return 0
}

func (v Vector) norm() float64 {
	var sum float64
	for _, t := range v {
		sum += t.Weight * t.Weight
	}
	return math.Sqrt(sum)
}

// Vectorizer is a TF-IDF vector space fit over a fixed set of documents.
// Weights are raw term counts times a smoothed idf,
// idf(t) = ln((1+n)/(1+df(t))) + 1, and every row is L2-normalized.
type Vectorizer struct {
	vocab map[string]int
	idf   []float64
	rows  []Vector
}

// Fit builds the vocabulary and idf weights from docs and transforms each
// document into its row. Rows are returned in document order.
func Fit(docs []string) *Vectorizer {
	v := &Vectorizer{vocab: make(map[string]int)}

	tokenized := make([][]string, len(docs))
	var df []int
	for i, doc := range docs {
		tokens := Tokenize(doc)
		tokenized[i] = tokens

		seen := make(map[int]bool, len(tokens))
		for _, tok := range tokens {
			idx, ok := v.vocab[tok]
			if !ok {
				idx = len(v.vocab)
				v.vocab[tok] = idx
				df = append(df, 0)
			}
			if !seen[idx] {
				seen[idx] = true
				df[idx]++
			}
		}
	}

	n := float64(len(docs))
	v.idf = make([]float64, len(df))
	for i, d := range df {
		v.idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}

	v.rows = make([]Vector, len(docs))
	for i, tokens := range tokenized {
		v.rows[i] = v.weigh(tokens)
	}
	return v
}

// Row returns the fitted row of document i.
func (v *Vectorizer) Row(i int) Vector {
	return v.rows[i]
}

// Len returns the number of fitted documents.
func (v *Vectorizer) Len() int {
	return len(v.rows)
}

// VocabularySize returns the number of distinct terms seen during Fit.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocab)
}

// Transform maps a new document into the fitted space. Terms outside the
// vocabulary are ignored.
func (v *Vectorizer) Transform(doc string) Vector {
	return v.weigh(Tokenize(doc))
}

func (v *Vectorizer) weigh(tokens []string) Vector {
	counts := make(map[int]float64)
	for _, tok := range tokens {
		if idx, ok := v.vocab[tok]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return Vector{}
	}

	out := make(Vector, 0, len(counts))
	for idx, c := range counts {
		out = append(out, Term{Index: idx, Weight: c * v.idf[idx]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })

	n := out.norm()
	for i := range out {
		out[i].Weight /= n
	}
	return out
}

// Cosine returns the cosine similarity of two vectors. Zero vectors have
// similarity 0 with everything.
func Cosine(a, b Vector) float64 {
	na, nb := a.norm(), b.norm()
	if na == 0 || nb == 0 {
		return 0
	}
	var dot float64
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i].Index < b[j].Index:
			i++
		case a[i].Index > b[j].Index:
			j++
		default:
			dot += a[i].Weight * b[j].Weight
			i++
			j++
		}
	}
	sim := dot / (na * nb)
	// Clamp float drift so identical rows compare as exactly 1.
	return math.Max(0, math.Min(1, sim))
}

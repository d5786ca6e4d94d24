// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keywords

// stopwords end a chunk: function words plus frequent verbs that never
// head a noun phrase in a search topic.
var stopwords = toSet(
	// determiners and quantifiers
	"a", "an", "the", "this", "that", "these", "those", "some", "any", "each",
	"every", "all", "both", "either", "neither", "no", "another", "such",
	// prepositions
	"about", "above", "across", "after", "against", "along", "among", "around",
	"as", "at", "before", "behind", "below", "beneath", "beside", "between",
	"beyond", "by", "despite", "down", "during", "except", "for", "from", "in",
	"inside", "into", "like", "near", "of", "off", "on", "onto", "out", "over",
	"per", "since", "through", "throughout", "to", "toward", "towards", "under",
	"until", "up", "upon", "via", "with", "within", "without", "versus", "vs",
	// conjunctions
	"and", "or", "but", "nor", "so", "yet", "if", "because", "although",
	"though", "while", "whereas", "than", "then", "unless", "whether",
	// pronouns
	"i", "me", "my", "we", "us", "our", "you", "your", "he", "him", "his",
	"she", "her", "it", "its", "they", "them", "their", "one", "ones",
	"myself", "ourselves", "itself", "themselves",
	// wh-words
	"what", "which", "who", "whom", "whose", "when", "where", "why", "how",
	// auxiliaries and modals
	"is", "are", "was", "were", "be", "been", "being", "am", "do", "does",
	"did", "done", "doing", "have", "has", "had", "having", "can", "could",
	"may", "might", "must", "shall", "should", "will", "would",
	// adverbs and particles
	"not", "very", "also", "just", "more", "most", "less", "least", "only",
	"too", "here", "there", "now", "again", "ever", "never", "often",
	// common verbs
	"affect", "affects", "apply", "applied", "applying", "compare", "compared",
	"comparing", "find", "finding", "get", "help", "helps", "improve",
	"improves", "improving", "make", "makes", "predict", "predicting", "reduce",
	"reduces", "use", "used", "uses", "using", "work", "works",
)

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

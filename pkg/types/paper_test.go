// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaperRecordCanonical(t *testing.T) {
	in := PaperRecord{
		Title:   "a\r\nb",
		Authors: "A, B",
		Summary: "one\r\ntwo\rthree\nfour",
		URL:     "https://example.org",
		Source:  "ArXiv",
	}
	want := PaperRecord{
		Title:   "a\nb",
		Authors: "A, B",
		Summary: "one\ntwo\nthree\nfour",
		URL:     "https://example.org",
		Source:  "ArXiv",
	}
	assert.Equal(t, want, in.Canonical())
	assert.Equal(t, want, want.Canonical())
}

func TestPaperRecordScorable(t *testing.T) {
	assert.True(t, PaperRecord{Title: "t"}.Scorable())
	assert.True(t, PaperRecord{Summary: "s"}.Scorable())
	assert.False(t, PaperRecord{Authors: "a", URL: "#"}.Scorable())
}

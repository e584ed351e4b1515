package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainTextPassesThrough(t *testing.T) {
	content := "Lecture 3: membrane transport.\nOsmosis moves water across membranes."
	assert.Equal(t, content, ParseContent(content))
}

func TestMalformedLexicalFallsBack(t *testing.T) {
	content := `{"root": this is not valid json}`
	assert.Equal(t, content, ParseContent(content))
}

func TestLexicalDocumentRendersMarkdown(t *testing.T) {
	content := `{"root":{"type":"root","children":[` +
		`{"type":"heading","tag":"h2","children":[{"type":"text","text":"Photosynthesis"}]},` +
		`{"type":"paragraph","children":[` +
		`{"type":"text","text":"Light reactions are "},` +
		`{"type":"text","text":"essential","format":1}]},` +
		`{"type":"list","listType":"bullet","children":[` +
		`{"type":"listitem","children":[{"type":"text","text":"Chlorophyll"}]},` +
		`{"type":"listitem","children":[{"type":"text","text":"Thylakoid"}]}]}]}}`

	md := ParseContent(content)

	assert.Contains(t, md, "## Photosynthesis")
	assert.Contains(t, md, "Light reactions are **essential**")
	assert.Contains(t, md, "- Chlorophyll")
	assert.Contains(t, md, "- Thylakoid")
}

func TestChecklistMarkers(t *testing.T) {
	content := `{"root":{"type":"root","children":[` +
		`{"type":"list","listType":"check","children":[` +
		`{"type":"listitem","checked":true,"children":[{"type":"text","text":"Read chapter 4"}]},` +
		`{"type":"listitem","children":[{"type":"text","text":"Review slides"}]}]}]}}`

	md := ParseContent(content)

	assert.Contains(t, md, "- [x] Read chapter 4")
	assert.Contains(t, md, "- [ ] Review slides")
}

func TestInlineStylingIsDiscarded(t *testing.T) {
	content := `{"root":{"type":"root","children":[` +
		`{"type":"paragraph","children":[` +
		`{"type":"text","text":"highlighted","style":"color: #F97316; background-color: #BFDBFE;"}]}]}}`

	md := ParseContent(content)

	assert.Contains(t, md, "highlighted")
	assert.NotContains(t, md, "span")
	assert.NotContains(t, md, "#F97316")
}

package recommend

import (
	"strings"

	"github.com/Alias1177/Analyst/models"
)

// headingFields maps response headings (lowercased, prefix match) onto
// narrative sections.
var headingFields = []struct {
	prefix string
	assign func(*models.Narrative, string)
}{
	{"tl;dr", func(n *models.Narrative, s string) { n.TLDR = s }},
	{"short-term", func(n *models.Narrative, s string) { n.ShortTerm = s }},
	{"long-term", func(n *models.Narrative, s string) { n.LongTerm = s }},
	{"key catalysts", func(n *models.Narrative, s string) { n.Catalysts = s }},
	{"key risks", func(n *models.Narrative, s string) { n.Risks = s }},
	{"confidence", func(n *models.Narrative, s string) { n.Confidence = s }},
}

// ParseNarrative splits the LLM response into the expected markdown sections.
// The model output is untrusted: arbitrary text, missing headings, and
// reordered sections all parse without error — unmatched content simply stays
// only in Raw.
func ParseNarrative(text string) *models.Narrative {
	narrative := &models.Narrative{Raw: text}

	var current func(*models.Narrative, string)
	var buf []string

	flush := func() {
		if current != nil {
			current(narrative, strings.TrimSpace(strings.Join(buf, "\n")))
		}
		buf = buf[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if heading, ok := strings.CutPrefix(trimmed, "## "); ok {
			flush()
			current = matchHeading(heading)
			continue
		}
		if current != nil {
			buf = append(buf, line)
		}
	}
	flush()

	return narrative
}

func matchHeading(heading string) func(*models.Narrative, string) {
	lower := strings.ToLower(strings.TrimSpace(heading))
	for _, hf := range headingFields {
		if strings.HasPrefix(lower, hf.prefix) {
			return hf.assign
		}
	}
	return nil
}

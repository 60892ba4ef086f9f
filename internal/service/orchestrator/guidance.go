package orchestrator

import (
	"fmt"
	"strings"

	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/internal/service/replay"
)

const selectionBasePrompt = `You are the tool router of a Bible-study assistant.
Select the tools needed to answer the user's message. Prefer fewer,
well-targeted calls. Use the "filter" argument of the content tools when
the user wants to find WHERE something appears rather than read a passage.`

var intentGuidance = map[domain.Intent]string{
	domain.IntentRead:       "The user wants to read scripture or study material. Fetch the passage they name, and translation notes when they ask for help.",
	domain.IntentLocate:     "The user wants to find where something appears. Use search_all, or a content tool with the filter argument when they name a book or passage to look inside.",
	domain.IntentUnderstand: "The user wants an explanation. Fetch the passage plus translation notes, and the translation word article when a single term is in question.",
	domain.IntentNote:       "The user wants to work with their saved notes. Use create_note, get_notes, update_note, or delete_note.",
}

func selectionPrompt(it domain.Intent) string {
	guidance, ok := intentGuidance[it]
	if !ok {
		guidance = intentGuidance[domain.IntentRead]
	}
	return selectionBasePrompt + "\n\n" + guidance
}

const answerBasePrompt = `You are a warm, knowledgeable Bible-study companion.
Answer from the fetched material below; do not invent verse text. Keep
answers focused and conversational. Cite references in "Book C:V" form.`

// answerPrompt builds the system prompt for the streamed answer,
// embedding whatever the tool round fetched.
func answerPrompt(it domain.Intent, state *replay.State, scriptureContext, responseLanguage string) string {
	var b strings.Builder
	b.WriteString(answerBasePrompt)

	if responseLanguage != "" {
		fmt.Fprintf(&b, "\n\nRespond in %s.", responseLanguage)
	}
	if it == domain.IntentNote {
		b.WriteString("\n\nThe user is managing their saved notes; confirm what was done.")
	}

	if scriptureContext != "" {
		b.WriteString("\n\n## Passage on screen\n")
		b.WriteString(scriptureContext)
	}

	if state == nil {
		return b.String()
	}

	if state.Scripture != nil && state.Scripture.Text != "" {
		fmt.Fprintf(&b, "\n\n## Scripture (%s)\n%s", state.Scripture.Reference, state.Scripture.Text)
	}

	if len(state.Matches) > 0 {
		b.WriteString("\n\n## Located verses\n")
		for _, m := range state.Matches {
			fmt.Fprintf(&b, "- %s %d:%d %s\n", m.Book, m.Chapter, m.Verse, m.Text)
		}
	}

	for _, r := range state.Resources {
		fmt.Fprintf(&b, "\n\n## %s: %s\n%s", r.Kind, r.Title, r.Content)
	}

	if state.Search != nil {
		fmt.Fprintf(&b, "\n\n## Search results for %q\n%s", state.Search.Query, searchDigest(state.Search))
	}

	return b.String()
}

// searchDigest flattens search results into a short prompt section.
func searchDigest(s *domain.SearchResults) string {
	var b strings.Builder
	if s.Scripture != nil {
		fmt.Fprintf(&b, "Scripture: %d matches.\n", s.Scripture.TotalCount)
		for _, m := range s.Scripture.Matches {
			fmt.Fprintf(&b, "- %s %d:%d %s\n", m.Book, m.Chapter, m.Verse, m.Text)
		}
	}
	if s.Notes != nil {
		fmt.Fprintf(&b, "Translation notes: %d matches.\n", s.Notes.TotalCount)
	}
	if s.Questions != nil {
		fmt.Fprintf(&b, "Questions: %d matches.\n", s.Questions.TotalCount)
	}
	if s.Words != nil {
		fmt.Fprintf(&b, "Word articles: %d matches.\n", s.Words.TotalCount)
	}
	if s.Academy != nil {
		fmt.Fprintf(&b, "Academy articles: %d matches.\n", s.Academy.TotalCount)
	}
	return b.String()
}

package orchestrator

import (
	"github.com/klappy/unfoldingtheword/internal/adapter/provider/claude"
	"github.com/klappy/unfoldingtheword/internal/domain"
)

func prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

// toolSpecs is the fixed tool surface offered to the model. The three
// resource tools double as locate tools via the optional filter
// argument; there are no separate locate tools.
func toolSpecs() []claude.ToolSpec {
	filterDesc := "Optional term to locate instead of retrieve: returns the verses containing the term rather than the full text."

	return []claude.ToolSpec{
		{
			Name:        domain.ToolGetScripture,
			Description: "Fetch the text of a scripture passage, e.g. \"John 3:16\" or a whole chapter \"Romans 8\".",
			Properties: map[string]any{
				"reference": prop("string", "Scripture reference, book with optional chapter and verse range."),
				"filter":    prop("string", filterDesc),
			},
			Required: []string{"reference"},
		},
		{
			Name:        domain.ToolGetNotes,
			Description: "Fetch translation notes explaining difficult phrases in a passage.",
			Properties: map[string]any{
				"reference": prop("string", "Scripture reference the notes should cover."),
				"filter":    prop("string", filterDesc),
			},
			Required: []string{"reference"},
		},
		{
			Name:        domain.ToolGetQuestions,
			Description: "Fetch comprehension questions for a passage.",
			Properties: map[string]any{
				"reference": prop("string", "Scripture reference the questions should cover."),
				"filter":    prop("string", filterDesc),
			},
			Required: []string{"reference"},
		},
		{
			Name:        domain.ToolGetWord,
			Description: "Fetch translation-word articles. Given a term, fetches that article; given only a reference, resolves the passage's word links and fetches every linked definition.",
			Properties: map[string]any{
				"term":      prop("string", "The biblical term to look up, e.g. \"grace\" or \"covenant\"."),
				"reference": prop("string", "Scripture reference whose key terms should be fetched when no term is given."),
				"filter":    prop("string", filterDesc),
			},
			Required: []string{},
		},
		{
			Name:        domain.ToolGetAcademy,
			Description: "Fetch a translation-academy article explaining a translation concept, e.g. \"figs-metaphor\".",
			Properties: map[string]any{
				"term": prop("string", "The academy article slug."),
			},
			Required: []string{"term"},
		},
		{
			Name:        domain.ToolSearchAll,
			Description: "Search scripture and all study resources for a word or phrase.",
			Properties: map[string]any{
				"query":     prop("string", "The word or phrase to search for."),
				"scope":     prop("string", "Optional book or passage to limit the search, e.g. \"Romans\"."),
				"scopeType": prop("string", "Scope granularity: \"book\", \"chapter\", or \"all\"."),
			},
			Required: []string{"query"},
		},
		{
			Name:        domain.ToolCreateNote,
			Description: "Save a study note for the user, optionally attached to a scripture reference.",
			Properties: map[string]any{
				"content":   prop("string", "The note text."),
				"reference": prop("string", "Optional scripture reference to group the note under."),
			},
			Required: []string{"content"},
		},
		{
			Name:        domain.ToolGetUserNotes,
			Description: "List the user's saved study notes, optionally filtered by scripture reference.",
			Properties: map[string]any{
				"reference": prop("string", "Optional exact reference to filter by."),
			},
		},
		{
			Name:        domain.ToolUpdateNote,
			Description: "Replace the content of an existing study note.",
			Properties: map[string]any{
				"note_id":   prop("string", "ID of the note to update."),
				"content":   prop("string", "The replacement note text."),
				"reference": prop("string", "Optional new scripture reference."),
			},
			Required: []string{"note_id", "content"},
		},
		{
			Name:        domain.ToolDeleteNote,
			Description: "Delete one of the user's study notes.",
			Properties: map[string]any{
				"note_id": prop("string", "ID of the note to delete."),
			},
			Required: []string{"note_id"},
		},
	}
}

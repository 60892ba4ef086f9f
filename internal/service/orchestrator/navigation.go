package orchestrator

import (
	"github.com/klappy/unfoldingtheword/internal/domain"
)

// deriveNavigation picks the panel the client should focus from the
// signatures that fired. Locate mode (any filter argument) and
// search_all point at the search panel; note tools at the notes panel;
// resource fetches beat bare scripture.
func deriveNavigation(calls []domain.ToolCall) domain.NavigationHint {
	var sawScripture, sawResources, sawNotes bool

	for _, call := range calls {
		if call.StringArg("filter") != "" {
			return domain.NavSearch
		}
		switch call.Tool {
		case domain.ToolSearchAll:
			return domain.NavSearch
		case domain.ToolCreateNote, domain.ToolGetUserNotes, domain.ToolUpdateNote, domain.ToolDeleteNote:
			sawNotes = true
		case domain.ToolGetNotes, domain.ToolGetQuestions, domain.ToolGetWord, domain.ToolGetAcademy:
			sawResources = true
		case domain.ToolGetScripture:
			sawScripture = true
		}
	}

	switch {
	case sawNotes:
		return domain.NavNotes
	case sawResources:
		return domain.NavResources
	case sawScripture:
		return domain.NavScripture
	}
	return domain.NavScripture
}

// searchQuery extracts the query the search panel should display: the
// search_all query, or the first locate-mode filter term.
func searchQuery(calls []domain.ToolCall) string {
	for _, call := range calls {
		if call.Tool == domain.ToolSearchAll {
			if q := call.StringArg("query"); q != "" {
				return q
			}
		}
	}
	for _, call := range calls {
		if f := call.StringArg("filter"); f != "" {
			return f
		}
	}
	return ""
}

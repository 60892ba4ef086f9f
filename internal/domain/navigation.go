package domain

// NavigationHint tells the client which UI panel to focus after a
// response. It is derived from which tools fired and drives nothing but
// presentation.
type NavigationHint string

const (
	NavScripture NavigationHint = "scripture"
	NavResources NavigationHint = "resources"
	NavSearch    NavigationHint = "search"
	NavNotes     NavigationHint = "notes"
)

// Intent is the coarse classification of a non-reference user message.
type Intent string

const (
	// IntentRead is the default: fetch and show content. It is also the
	// fallback when classification fails, being the least presumptive.
	IntentRead       Intent = "read"
	IntentLocate     Intent = "locate"
	IntentUnderstand Intent = "understand"
	IntentNote       Intent = "note"
)

// ParseIntent maps a classifier label to an Intent, defaulting to read.
func ParseIntent(label string) Intent {
	switch Intent(label) {
	case IntentLocate, IntentUnderstand, IntentNote, IntentRead:
		return Intent(label)
	}
	return IntentRead
}

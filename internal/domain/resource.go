package domain

// ResourceKind discriminates the resource variants returned by the
// translation-helps tools. It replaces the ad-hoc unions of the upstream
// payloads with an explicit tag so downstream code can switch on it.
type ResourceKind string

const (
	KindTranslationNote     ResourceKind = "translation-note"
	KindTranslationQuestion ResourceKind = "translation-question"
	KindTranslationWord     ResourceKind = "translation-word"
	KindAcademyArticle      ResourceKind = "academy-article"
	KindUserNote            ResourceKind = "note"
)

// Valid reports whether k is one of the known resource kinds.
func (k ResourceKind) Valid() bool {
	switch k {
	case KindTranslationNote, KindTranslationQuestion, KindTranslationWord,
		KindAcademyArticle, KindUserNote:
		return true
	}
	return false
}

// Resource is a single study resource: one translation note, one
// question, one word study, one academy article, or one user note.
// Resources are independent; Reference is display grouping only, no
// referential integrity is enforced across resources.
type Resource struct {
	ID        string       `json:"id"`
	Kind      ResourceKind `json:"type"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	Reference string       `json:"reference,omitempty"`
}

package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Reference is a parsed scripture reference. VerseEnd is 0 for a single
// verse, Verse is 0 for a whole chapter, Chapter is 0 for a whole book.
type Reference struct {
	Book     string
	Chapter  int
	Verse    int
	VerseEnd int
}

// String renders the canonical "Book C:V-V" form.
func (r Reference) String() string {
	if r.Chapter == 0 {
		return r.Book
	}
	if r.Verse == 0 {
		return fmt.Sprintf("%s %d", r.Book, r.Chapter)
	}
	if r.VerseEnd == 0 {
		return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
	}
	return fmt.Sprintf("%s %d:%d-%d", r.Book, r.Chapter, r.Verse, r.VerseEnd)
}

// bookAliases maps normalized book names and common abbreviations, in
// English and Spanish, to the canonical English book name used by the
// upstream content API. The table is immutable package data; it is the
// only cache-like structure in the pipeline.
var bookAliases = map[string]string{
	// Old Testament
	"genesis": "Genesis", "gen": "Genesis",
	"exodus": "Exodus", "exo": "Exodus", "exod": "Exodus", "exodo": "Exodus",
	"leviticus": "Leviticus", "lev": "Leviticus", "levitico": "Leviticus",
	"numbers": "Numbers", "num": "Numbers", "numeros": "Numbers",
	"deuteronomy": "Deuteronomy", "deut": "Deuteronomy", "deuteronomio": "Deuteronomy",
	"joshua": "Joshua", "josh": "Joshua", "josue": "Joshua",
	"judges": "Judges", "judg": "Judges", "jueces": "Judges",
	"ruth": "Ruth", "rut": "Ruth",
	"1 samuel": "1 Samuel", "1samuel": "1 Samuel", "1 sam": "1 Samuel",
	"2 samuel": "2 Samuel", "2samuel": "2 Samuel", "2 sam": "2 Samuel",
	"1 kings": "1 Kings", "1 kgs": "1 Kings", "1 reyes": "1 Kings",
	"2 kings": "2 Kings", "2 kgs": "2 Kings", "2 reyes": "2 Kings",
	"1 chronicles": "1 Chronicles", "1 chr": "1 Chronicles", "1 cronicas": "1 Chronicles",
	"2 chronicles": "2 Chronicles", "2 chr": "2 Chronicles", "2 cronicas": "2 Chronicles",
	"ezra": "Ezra", "esdras": "Ezra",
	"nehemiah": "Nehemiah", "neh": "Nehemiah", "nehemias": "Nehemiah",
	"esther": "Esther", "est": "Esther", "ester": "Esther",
	"job": "Job",
	"psalms": "Psalms", "psalm": "Psalms", "ps": "Psalms", "salmos": "Psalms", "salmo": "Psalms",
	"proverbs": "Proverbs", "prov": "Proverbs", "proverbios": "Proverbs",
	"ecclesiastes": "Ecclesiastes", "eccl": "Ecclesiastes", "eclesiastes": "Ecclesiastes",
	"song of solomon": "Song of Solomon", "song of songs": "Song of Solomon", "cantares": "Song of Solomon",
	"isaiah": "Isaiah", "isa": "Isaiah", "isaias": "Isaiah",
	"jeremiah": "Jeremiah", "jer": "Jeremiah", "jeremias": "Jeremiah",
	"lamentations": "Lamentations", "lam": "Lamentations", "lamentaciones": "Lamentations",
	"ezekiel": "Ezekiel", "ezek": "Ezekiel", "ezequiel": "Ezekiel",
	"daniel": "Daniel", "dan": "Daniel",
	"hosea": "Hosea", "hos": "Hosea", "oseas": "Hosea",
	"joel": "Joel",
	"amos": "Amos",
	"obadiah": "Obadiah", "obad": "Obadiah", "abdias": "Obadiah",
	"jonah": "Jonah", "jon": "Jonah", "jonas": "Jonah",
	"micah": "Micah", "mic": "Micah", "miqueas": "Micah",
	"nahum": "Nahum", "nah": "Nahum",
	"habakkuk": "Habakkuk", "hab": "Habakkuk", "habacuc": "Habakkuk",
	"zephaniah": "Zephaniah", "zeph": "Zephaniah", "sofonias": "Zephaniah",
	"haggai": "Haggai", "hag": "Haggai", "hageo": "Haggai",
	"zechariah": "Zechariah", "zech": "Zechariah", "zacarias": "Zechariah",
	"malachi": "Malachi", "mal": "Malachi", "malaquias": "Malachi",

	// New Testament
	"matthew": "Matthew", "matt": "Matthew", "mt": "Matthew", "mateo": "Matthew",
	"mark": "Mark", "mk": "Mark", "marcos": "Mark",
	"luke": "Luke", "lk": "Luke", "lucas": "Luke",
	"john": "John", "jn": "John", "juan": "John",
	"acts": "Acts", "hechos": "Acts",
	"romans": "Romans", "rom": "Romans", "romanos": "Romans",
	"1 corinthians": "1 Corinthians", "1 cor": "1 Corinthians", "1 corintios": "1 Corinthians",
	"2 corinthians": "2 Corinthians", "2 cor": "2 Corinthians", "2 corintios": "2 Corinthians",
	"galatians": "Galatians", "gal": "Galatians", "galatas": "Galatians",
	"ephesians": "Ephesians", "eph": "Ephesians", "efesios": "Ephesians",
	"philippians": "Philippians", "phil": "Philippians", "filipenses": "Philippians",
	"colossians": "Colossians", "col": "Colossians", "colosenses": "Colossians",
	"1 thessalonians": "1 Thessalonians", "1 thess": "1 Thessalonians", "1 tesalonicenses": "1 Thessalonians",
	"2 thessalonians": "2 Thessalonians", "2 thess": "2 Thessalonians", "2 tesalonicenses": "2 Thessalonians",
	"1 timothy": "1 Timothy", "1 tim": "1 Timothy", "1 timoteo": "1 Timothy",
	"2 timothy": "2 Timothy", "2 tim": "2 Timothy", "2 timoteo": "2 Timothy",
	"titus": "Titus", "tito": "Titus",
	"philemon": "Philemon", "phlm": "Philemon", "filemon": "Philemon",
	"hebrews": "Hebrews", "heb": "Hebrews", "hebreos": "Hebrews",
	"james": "James", "jas": "James", "santiago": "James",
	"1 peter": "1 Peter", "1 pet": "1 Peter", "1 pedro": "1 Peter",
	"2 peter": "2 Peter", "2 pet": "2 Peter", "2 pedro": "2 Peter",
	"1 john": "1 John", "1 jn": "1 John", "1 juan": "1 John",
	"2 john": "2 John", "2 jn": "2 John", "2 juan": "2 John",
	"3 john": "3 John", "3 jn": "3 John", "3 juan": "3 John",
	"jude": "Jude", "judas": "Jude",
	"revelation": "Revelation", "rev": "Revelation", "apocalipsis": "Revelation",
}

// CanonicalBook resolves a book name or abbreviation (any supported
// language, any case) to its canonical English name.
func CanonicalBook(name string) (string, bool) {
	book, ok := bookAliases[NormalizeText(name)]
	return book, ok
}

// refPattern captures "<book> <chapter>[:<verse>[-<end>]]" with an
// optional leading ordinal for numbered books. Periods are tolerated as
// chapter-verse separators since some locales use them.
var refPattern = regexp.MustCompile(`^((?:[123]\s+)?[a-z][a-z ]*?)(?:\s+(\d{1,3})(?:[:.](\d{1,3})(?:-(\d{1,3}))?)?)?$`)

// ParseReference parses a message that is a bare scripture reference,
// like "John 3:16", "1 cor 13", "Juan 3.16-18" or just "Romans".
// Returns false if the message is anything other than a reference.
func ParseReference(message string) (Reference, bool) {
	m := refPattern.FindStringSubmatch(NormalizeText(message))
	if m == nil {
		return Reference{}, false
	}

	book, ok := CanonicalBook(m[1])
	if !ok {
		return Reference{}, false
	}

	ref := Reference{Book: book}
	ref.Chapter = atoiOrZero(m[2])
	ref.Verse = atoiOrZero(m[3])
	ref.VerseEnd = atoiOrZero(m[4])
	if ref.VerseEnd != 0 && ref.VerseEnd < ref.Verse {
		return Reference{}, false
	}
	return ref, true
}

// IsReference reports whether the message is a bare scripture reference.
func IsReference(message string) bool {
	_, ok := ParseReference(message)
	return ok
}

// FindBook scans a free-text message for the first known book name and
// returns its canonical form. Used by locate-intent handling to anchor a
// search scope ("find love in Romans" -> "Romans").
func FindBook(message string) (string, bool) {
	words := strings.Fields(NormalizeText(message))
	for i := range words {
		// Two-word window first so "1 john" beats "john".
		if i+1 < len(words) {
			if book, ok := bookAliases[words[i]+" "+words[i+1]]; ok {
				return book, true
			}
		}
		if book, ok := bookAliases[strings.Trim(words[i], ".,;:!?")]; ok {
			return book, true
		}
	}
	return "", false
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

package corpus

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// sectionNamespace scopes section IDs so that the same source and position
// always yield the same ID across rebuilds.
var sectionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("ai-tutor-be/corpus/section"))

var (
	headingPattern = regexp.MustCompile(`^ {0,3}(#{1,3})[ \t]+(.*?)[ \t]*#*[ \t]*$`)
	fencePattern   = regexp.MustCompile("^ {0,3}(```|~~~)")
)

// Index is an ordered, read-only set of sections with derived lookups.
// Share it freely between goroutines once built.
type Index struct {
	sections []Section
	titles   map[string]int
	postings map[string][]int
}

// Build splits every source into sections and indexes them. Sources are kept
// in the given order, which is also the tie-break order of the matcher.
// A source without headings becomes a single untitled section.
func Build(sources []RawSection) (*Index, error) {
	idx := &Index{
		titles:   make(map[string]int),
		postings: make(map[string][]int),
	}

	for _, src := range sources {
		if strings.TrimSpace(src.Source) == "" {
			return nil, &CorpusError{Op: "build", Err: ErrMissingSource}
		}
		if !utf8.ValidString(src.Text) {
			return nil, &CorpusError{Source: src.Source, Op: "build", Err: ErrInvalidEncoding}
		}

		for n, part := range splitSections(src.Text) {
			id := uuid.NewSHA1(sectionNamespace, []byte(src.Source+"#"+strconv.Itoa(n))).String()
			idx.add(newSection(id, src.Source, part.title, part.body))
		}
	}

	return idx, nil
}

func (i *Index) add(sec Section) {
	pos := len(i.sections)
	i.sections = append(i.sections, sec)

	if sec.titlePhrase != "" {
		if _, exists := i.titles[sec.titlePhrase]; !exists {
			i.titles[sec.titlePhrase] = pos
		}
	}
	for _, kw := range sec.Keywords {
		i.postings[kw] = append(i.postings[kw], pos)
	}
}

// Len returns the number of sections
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.sections)
}

// Sections returns the sections in corpus order. Callers must not modify
// the returned slice.
func (i *Index) Sections() []Section {
	if i == nil {
		return nil
	}
	return i.sections
}

// Section returns the section at pos in corpus order
func (i *Index) Section(pos int) Section {
	return i.sections[pos]
}

// LookupTitle returns the first section whose normalized title equals phrase
func (i *Index) LookupTitle(phrase string) (Section, bool) {
	if i == nil {
		return Section{}, false
	}
	pos, ok := i.titles[phrase]
	if !ok {
		return Section{}, false
	}
	return i.sections[pos], true
}

// Postings returns the positions of sections whose keyword set holds tok,
// in ascending order.
func (i *Index) Postings(tok string) []int {
	if i == nil {
		return nil
	}
	return i.postings[tok]
}

// Sources returns the distinct source identifiers in corpus order
func (i *Index) Sources() []string {
	if i == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, s := range i.sections {
		if !seen[s.Source] {
			seen[s.Source] = true
			out = append(out, s.Source)
		}
	}
	return out
}

type part struct {
	title string
	body  string
}

// splitSections cuts markdown-ish text at level 1-3 headings. Headings inside
// fenced code blocks are ignored. Text before the first heading becomes an
// untitled part when it is not blank.
func splitSections(text string) []part {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var (
		parts   []part
		title   string
		body    strings.Builder
		inFence bool
	)

	flush := func() {
		if b := strings.TrimSpace(body.String()); title != "" || b != "" {
			parts = append(parts, part{title: title, body: b})
		}
		body.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		if fencePattern.MatchString(line) {
			inFence = !inFence
		}
		if !inFence {
			if m := headingPattern.FindStringSubmatch(line); m != nil && strings.TrimSpace(m[2]) != "" {
				flush()
				title = strings.TrimSpace(m[2])
				continue
			}
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	flush()

	return parts
}

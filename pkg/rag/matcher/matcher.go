// Package matcher decides whether a question can be answered from the
// internal corpus. It is a lexical scorer: exact title containment first,
// then a weighted fuzzy title / keyword overlap score held against a trust
// threshold. Below the threshold nothing is returned.
package matcher

import (
	"context"
	"sort"
	"sync/atomic"

	"github.com/agnivade/levenshtein"

	"ai-tutor-be/pkg/rag/corpus"
	"ai-tutor-be/pkg/textnorm"
)

type Reason string

const (
	ReasonTitleExact    Reason = "title-exact"
	ReasonTitleContains Reason = "title-contains"
	ReasonScored        Reason = "scored"
	ReasonNone          Reason = "none"
)

type Config struct {
	Threshold     float64 // minimum combined score to trust a scored match
	TitleWeight   float64
	KeywordWeight float64
	// MinContainsLen is the shortest query phrase that may match by being
	// contained in a title.
	MinContainsLen int
}

func DefaultConfig() Config {
	return Config{
		Threshold:      0.45,
		TitleWeight:    0.4,
		KeywordWeight:  0.6,
		MinContainsLen: 4,
	}
}

// MatchResult is the outcome of one query. Section is nil when Matched is
// false; Score then carries the best score seen, for diagnostics.
type MatchResult struct {
	Matched bool
	Section *corpus.Section
	Score   float64
	Reason  Reason
}

// genericWords never count as strong keywords for the coverage guard.
var genericWords = map[string]bool{
	"pourrais": true, "voudrais": true, "definition": true, "definir": true,
	"exemple": true, "exemples": true, "utiliser": true, "utilisation": true,
	"cours": true, "introduire": true, "introduction": true, "donner": true,
	"expliquer": true, "quelles": true, "comment": true, "explain": true,
	"example": true, "please": true,
}

// Answer matches query against idx. Ties, in both the containment and the
// scored path, go to the section indexed first; this order carries no meaning.
// Every match, containment included, must mention each strong keyword of
// the query.
func Answer(query string, idx *corpus.Index, cfg Config) MatchResult {
	miss := MatchResult{Reason: ReasonNone}

	q := textnorm.Phrase(query)
	if q == "" || idx.Len() == 0 {
		return miss
	}
	secs := idx.Sections()
	keywords := textnorm.Keywords(q)
	strong := strongKeywords(keywords)

	if sec, ok := idx.LookupTitle(q); ok {
		return hit(sec, 1, ReasonTitleExact)
	}

	for i := range secs {
		if !covers(secs[i], strong) {
			continue
		}
		for _, alias := range secs[i].Aliases() {
			if textnorm.ContainsPhrase(q, alias) {
				return hit(secs[i], 1, ReasonTitleExact)
			}
		}
	}

	if len(q) >= cfg.MinContainsLen && len(keywords) > 0 {
		for i := range secs {
			if textnorm.ContainsPhrase(secs[i].TitlePhrase(), q) {
				return hit(secs[i], 1, ReasonTitleContains)
			}
		}
	}

	best, bestScore := -1, 0.0
	for _, i := range candidates(idx, keywords, cfg) {
		if !covers(secs[i], strong) {
			continue
		}
		s := cfg.TitleWeight*titleSimilarity(q, secs[i].TitlePhrase()) +
			cfg.KeywordWeight*keywordOverlap(keywords, secs[i])
		if s > bestScore {
			best, bestScore = i, s
		}
	}

	miss.Score = bestScore
	if best < 0 || bestScore < cfg.Threshold {
		return miss
	}
	return hit(secs[best], bestScore, ReasonScored)
}

// candidates returns, in corpus order, the sections worth scoring. When the
// title weight alone cannot reach the threshold only sections sharing a
// keyword with the query can pass, and the postings list them.
func candidates(idx *corpus.Index, keywords []string, cfg Config) []int {
	if cfg.TitleWeight >= cfg.Threshold {
		all := make([]int, idx.Len())
		for i := range all {
			all[i] = i
		}
		return all
	}

	seen := make(map[int]bool)
	var out []int
	for _, k := range keywords {
		for _, pos := range idx.Postings(k) {
			if !seen[pos] {
				seen[pos] = true
				out = append(out, pos)
			}
		}
	}
	sort.Ints(out)
	return out
}

func hit(sec corpus.Section, score float64, reason Reason) MatchResult {
	return MatchResult{Matched: true, Section: &sec, Score: score, Reason: reason}
}

// titleSimilarity is 1 - editDistance/longestLength, in [0,1]
func titleSimilarity(query, title string) float64 {
	if query == "" || title == "" {
		return 0
	}
	longest := len([]rune(query))
	if n := len([]rune(title)); n > longest {
		longest = n
	}
	d := levenshtein.ComputeDistance(query, title)
	return 1 - float64(d)/float64(longest)
}

// keywordOverlap is the share of query keywords found in the section
func keywordOverlap(keywords []string, sec corpus.Section) float64 {
	if len(keywords) == 0 {
		return 0
	}
	shared := 0
	for _, k := range keywords {
		if sec.HasKeyword(k) {
			shared++
		}
	}
	return float64(shared) / float64(len(keywords))
}

func strongKeywords(keywords []string) []string {
	var out []string
	for _, k := range keywords {
		if len(k) >= 5 && !genericWords[k] {
			out = append(out, k)
		}
	}
	return out
}

// covers rejects a section that never mentions one of the strong keywords:
// a question about a name absent from the corpus must not borrow a
// neighbouring section's answer.
func covers(sec corpus.Section, strong []string) bool {
	for _, k := range strong {
		if !sec.Mentions(k) {
			return false
		}
	}
	return true
}

// Matcher serves queries from an index that can be replaced while queries
// are in flight.
type Matcher struct {
	cfg Config
	idx atomic.Pointer[corpus.Index]
}

func New(cfg Config, idx *corpus.Index) *Matcher {
	m := &Matcher{cfg: cfg}
	if idx == nil {
		idx, _ = corpus.Build(nil)
	}
	m.idx.Store(idx)
	return m
}

func (m *Matcher) Answer(query string) MatchResult {
	return Answer(query, m.idx.Load(), m.cfg)
}

// Index returns the index currently serving
func (m *Matcher) Index() *corpus.Index {
	return m.idx.Load()
}

// Swap installs idx and returns the previous index
func (m *Matcher) Swap(idx *corpus.Index) *corpus.Index {
	return m.idx.Swap(idx)
}

// Reload builds a fresh index from loader and installs it. On error the
// current index keeps serving.
func (m *Matcher) Reload(ctx context.Context, loader corpus.Loader) (*corpus.Index, error) {
	idx, err := corpus.Load(ctx, loader)
	if err != nil {
		return nil, err
	}
	m.Swap(idx)
	return idx, nil
}

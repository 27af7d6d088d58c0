package corpus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const networkDoc = `Notes de cours réseau.

# Modèle OSI
Le modèle OSI comporte 7 couches.

## Domain Name System (DNS)
Le DNS traduit les noms de domaine en adresses IP.

` + "```" + `
# pas un titre
` + "```" + `

### Vide
`

func TestBuild_SplitsAtHeadings(t *testing.T) {
	idx, err := Build([]RawSection{{Source: "reseau.md", Text: networkDoc}})
	require.NoError(t, err)
	require.Equal(t, 4, idx.Len())

	secs := idx.Sections()

	assert.Equal(t, "", secs[0].Title)
	assert.Equal(t, "Notes de cours réseau.", secs[0].Body)

	assert.Equal(t, "Modèle OSI", secs[1].Title)
	assert.Equal(t, "modele osi", secs[1].TitlePhrase())
	assert.Equal(t, "Le modèle OSI comporte 7 couches.", secs[1].Body)

	assert.Equal(t, "Domain Name System (DNS)", secs[2].Title)
	assert.Contains(t, secs[2].Body, "# pas un titre")

	assert.Equal(t, "Vide", secs[3].Title)
	assert.Equal(t, "", secs[3].Body)

	for _, s := range secs {
		assert.Equal(t, "reseau.md", s.Source)
		assert.NotEmpty(t, s.ID)
	}
}

func TestBuild_NoHeadingsIsOneUntitledSection(t *testing.T) {
	idx, err := Build([]RawSection{{Source: "notes.txt", Text: "juste du texte\nsur deux lignes"}})
	require.NoError(t, err)
	require.Equal(t, 1, idx.Len())

	sec := idx.Section(0)
	assert.Equal(t, "", sec.Title)
	assert.Equal(t, "", sec.TitlePhrase())
	assert.Empty(t, sec.Aliases())
	assert.Equal(t, "juste du texte\nsur deux lignes", sec.Body)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		sources []RawSection
		want    error
	}{
		{"missing source", []RawSection{{Source: "  ", Text: "# A"}}, ErrMissingSource},
		{"invalid utf8", []RawSection{{Source: "bad.md", Text: "# A\n\xff\xfe"}}, ErrInvalidEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := Build(tt.sources)
			assert.Nil(t, idx)

			var cerr *CorpusError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, "build", cerr.Op)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	idx, err := Build(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
}

func TestBuild_StableIDs(t *testing.T) {
	src := []RawSection{{Source: "reseau.md", Text: networkDoc}}

	a, err := Build(src)
	require.NoError(t, err)
	b, err := Build(src)
	require.NoError(t, err)

	for i := range a.Sections() {
		assert.Equal(t, a.Section(i).ID, b.Section(i).ID)
	}
	assert.NotEqual(t, a.Section(0).ID, a.Section(1).ID)
}

func TestTitleAliases(t *testing.T) {
	tests := []struct {
		title string
		body  string
		want  []string
	}{
		{"Intelligence Artificielle", "L'IA imite la cognition.", []string{"intelligence artificielle", "ia"}},
		{"Domain Name System (DNS)", "", []string{"domain name system dns", "domain name system", "dns"}},
		{"Réseaux", "", []string{"reseaux"}},
		{"Réseau Local Virtuel", "Un RLV isole le trafic.", []string{"reseau local virtuel", "rlv"}},
		{"Machine Learning", "Apprentissage à partir de données.", []string{"machine learning"}},
		{"Sécurité Informatique", "Protéger les systèmes.", []string{"securite informatique"}},
		{"", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			sec := newSection("id", "src.md", tt.title, tt.body)
			assert.Equal(t, tt.want, sec.Aliases())
		})
	}
}

func TestIndex_Lookups(t *testing.T) {
	idx, err := Build([]RawSection{
		{Source: "a.md", Text: "# Protocole TCP\nTCP est fiable.\n# Protocole UDP\nUDP est rapide."},
		{Source: "b.md", Text: "# Protocole TCP\nDoublon."},
	})
	require.NoError(t, err)

	sec, ok := idx.LookupTitle("protocole tcp")
	require.True(t, ok)
	assert.Equal(t, "a.md", sec.Source)

	_, ok = idx.LookupTitle("protocole ip")
	assert.False(t, ok)

	assert.Equal(t, []int{0, 1, 2}, idx.Postings("protocole"))
	assert.Equal(t, []int{1}, idx.Postings("rapide"))
	assert.Equal(t, []string{"a.md", "b.md"}, idx.Sources())

	assert.True(t, sec.HasKeyword("fiable"))
	assert.False(t, sec.HasKeyword("est"))
	assert.True(t, sec.Mentions("est"))
}

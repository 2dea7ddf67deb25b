package suggest

import (
	"testing"

	"github.com/stackit-team/stackit-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCandidates_BareArray(t *testing.T) {
	got, err := ParseCandidates(`["react", "jwt", "prisma"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"react", "jwt", "prisma"}, got)
}

func TestParseCandidates_FencedJSON(t *testing.T) {
	raw := "```json\n[\"React\", \"Next.js\"]\n```"
	got, err := ParseCandidates(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"React", "Next.js"}, got)
}

func TestParseCandidates_FenceWithoutLanguage(t *testing.T) {
	raw := "```\n[\"go\"]\n```"
	got, err := ParseCandidates(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, got)
}

func TestParseCandidates_ProseAroundArray(t *testing.T) {
	raw := `Here are my suggestions: ["docker", "kubernetes"] hope that helps!`
	got, err := ParseCandidates(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"docker", "kubernetes"}, got)
}

func TestParseCandidates_DropsBlankEntries(t *testing.T) {
	got, err := ParseCandidates(`["react", "  ", ""]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"react"}, got)
}

func TestParseCandidates_NoArray(t *testing.T) {
	_, err := ParseCandidates("I cannot think of any tags.")
	assert.Error(t, err)

	_, err = ParseCandidates(`{"tags": "wrong shape"}`)
	assert.Error(t, err)
}

func TestFilterExisting(t *testing.T) {
	existing := []*domain.TagCount{
		{Name: "React"},
		{Name: "JWT"},
		{Name: "Next.js"},
	}

	got := FilterExisting([]string{"react", "REACT", "jwt", "vue", " next.js "}, existing)
	assert.Equal(t, []string{"React", "JWT", "Next.js"}, got,
		"canonical DB casing, case-insensitive match, deduped, unknown dropped")
}

func TestFilterExisting_Empty(t *testing.T) {
	assert.Empty(t, FilterExisting(nil, nil))
	assert.Empty(t, FilterExisting([]string{"react"}, nil))
}

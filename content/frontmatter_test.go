package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontMatterYAML(t *testing.T) {
	input := "---\ntitle: Hello\ndescription: First post\npubDate: 2024-01-15\ntags:\n  - go\n  - web\n---\n\n# Hello\n\nBody text.\n"

	values, body, err := ParseFrontMatter([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "Hello", values["title"])
	assert.Equal(t, "First post", values["description"])
	assert.Equal(t, []any{"go", "web"}, values["tags"])
	assert.Equal(t, "# Hello\n\nBody text.\n", body)

	meta, err := BlogSchema.MustCompile().Validate(values)
	require.NoError(t, err)
	assert.True(t, meta.PubDate.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
}

func TestParseFrontMatterTOML(t *testing.T) {
	input := "+++\ntitle = \"Hello\"\ndescription = \"First post\"\npubDate = 2024-01-15T10:00:00Z\ndraft = true\ntags = [\"go\"]\n+++\nBody\n"

	values, body, err := ParseFrontMatter([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "Body\n", body)

	meta, err := BlogSchema.MustCompile().Validate(values)
	require.NoError(t, err)
	assert.Equal(t, "Hello", meta.Title)
	assert.True(t, meta.Draft)
	assert.Equal(t, []string{"go"}, meta.Tags)
	assert.True(t, meta.PubDate.Equal(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)))
}

func TestParseFrontMatterAbsent(t *testing.T) {
	tests := []string{
		"# Just a heading\n",
		"",
		"---\ntitle: never closed\n",
	}
	for _, input := range tests {
		values, body, err := ParseFrontMatter([]byte(input))
		require.NoError(t, err, "ParseFrontMatter(%q)", input)
		assert.Empty(t, values, "ParseFrontMatter(%q)", input)
		assert.Equal(t, input, body, "ParseFrontMatter(%q)", input)
	}
}

func TestParseFrontMatterEmptyBlock(t *testing.T) {
	values, body, err := ParseFrontMatter([]byte("---\n---\nBody"))
	require.NoError(t, err)
	assert.Empty(t, values)
	assert.Equal(t, "Body", body)
}

func TestParseFrontMatterByteOrderMark(t *testing.T) {
	values, _, err := ParseFrontMatter([]byte("\ufeff---\ntitle: BOM\n---\n"))
	require.NoError(t, err)
	assert.Equal(t, "BOM", values["title"])
}

func TestParseFrontMatterMalformed(t *testing.T) {
	inputs := []string{
		"---\ntitle: [unclosed\n---\n",
		"---\n- a\n- b\n---\n",
		"+++\ntitle = \n+++\n",
	}
	for _, input := range inputs {
		_, _, err := ParseFrontMatter([]byte(input))
		assert.Error(t, err, "ParseFrontMatter(%q)", input)
	}
}

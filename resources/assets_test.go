package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleLoadsEmbeddedMarkdown(t *testing.T) {
	body, err := Article("rule-20-20-20.md")
	require.NoError(t, err)
	assert.Contains(t, body, "**20 seconds**")

	cached, err := Article("rule-20-20-20.md")
	require.NoError(t, err)
	assert.Equal(t, body, cached)
}

func TestArticleMissing(t *testing.T) {
	_, err := Article("missing.md")
	assert.Error(t, err)
}

func TestLogo(t *testing.T) {
	resource, err := Logo("eyeflow_active.png")
	require.NoError(t, err)
	assert.Equal(t, "logo/eyeflow_active.png", resource.Name())
	assert.NotEmpty(t, resource.Content())

	again, err := Logo("eyeflow_active.png")
	require.NoError(t, err)
	assert.Same(t, resource, again)

	assert.Panics(t, func() { MustLogo("missing.png") })
}

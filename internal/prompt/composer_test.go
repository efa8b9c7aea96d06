package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeSingleUserMessage(t *testing.T) {
	messages := Compose("Explored three layouts", "Conversion up 12%", []string{"https://blobs.test/a.png"})

	require.Len(t, messages, 1)
	assert.Equal(t, "user", messages[0].Role)
}

func TestComposeInterpolatesTextFields(t *testing.T) {
	messages := Compose("Explored three layouts", "Conversion up 12%", nil)

	require.Len(t, messages, 1)
	require.NotEmpty(t, messages[0].Content)

	text := messages[0].Content[0]
	assert.Equal(t, "text", text.Type)
	assert.Contains(t, text.Text, "Designer's thought process: Explored three layouts")
	assert.Contains(t, text.Text, "Achieved results: Conversion up 12%")
}

func TestComposePreservesImageOrder(t *testing.T) {
	urls := []string{
		"https://blobs.test/1_a.png",
		"https://blobs.test/2_b.jpg",
		"https://blobs.test/3_c.png",
	}
	messages := Compose("", "", urls)

	require.Len(t, messages, 1)
	parts := messages[0].Content
	require.Len(t, parts, len(urls)+1)

	for i, url := range urls {
		part := parts[i+1]
		assert.Equal(t, "image_url", part.Type)
		require.NotNil(t, part.ImageURL)
		assert.Equal(t, url, part.ImageURL.URL)
	}
}

func TestComposeEmptyTextsLegal(t *testing.T) {
	messages := Compose("", "", []string{"https://blobs.test/a.png"})

	require.Len(t, messages, 1)
	text := messages[0].Content[0].Text
	assert.Contains(t, text, "Designer's thought process: \n")
	assert.NotEmpty(t, text)
}

func TestComposeDeterministic(t *testing.T) {
	urls := []string{"https://blobs.test/a.png", "https://blobs.test/b.png"}
	first := Compose("thoughts", "results", urls)
	second := Compose("thoughts", "results", urls)

	assert.Equal(t, first, second)
}

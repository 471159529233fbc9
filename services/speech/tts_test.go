package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSynthesizerSelectsProvider(t *testing.T) {
	syn, err := NewSynthesizer("azure", "key", "westeurope", "fr-FR-DeniseNeural", "", "")
	require.NoError(t, err)
	assert.IsType(t, &AzureSynthesizer{}, syn)

	syn, err = NewSynthesizer("elevenlabs", "", "", "", "key", "Rachel")
	require.NoError(t, err)
	assert.IsType(t, &ElevenLabsSynthesizer{}, syn)
}

func TestNewSynthesizerRejectsUnknownProvider(t *testing.T) {
	_, err := NewSynthesizer("polly", "", "", "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "polly")
}

func TestSynthesizeRequiresKey(t *testing.T) {
	_, err := NewAzureSynthesizer("", "westeurope", "fr-FR-DeniseNeural").Synthesize(t.Context(), "bonjour")
	assert.Error(t, err)

	_, err = NewElevenLabsSynthesizer("", "Rachel").Synthesize(t.Context(), "bonjour")
	assert.Error(t, err)
}

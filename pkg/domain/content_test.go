package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioTranslationValidate(t *testing.T) {
	tests := []struct {
		name    string
		audio   AudioTranslation
		wantErr string
	}{
		{"valid", AudioTranslation{Filename: "intro.mp3", FileSizeBytes: 100}, ""},
		{"no extension", AudioTranslation{Filename: "intro", FileSizeBytes: 100}, "filename"},
		{"bad extension", AudioTranslation{Filename: "intro.wav", FileSizeBytes: 100}, "extension"},
		{"dot only", AudioTranslation{Filename: ".mp3", FileSizeBytes: 100}, "filename"},
		{"zero size", AudioTranslation{Filename: "intro.mp3", FileSizeBytes: 0}, "file size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.audio.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSubtitledHTMLValidate(t *testing.T) {
	content := &SubtitledHTML{
		HTML: "<p>hi</p>",
		AudioTranslations: map[string]*AudioTranslation{
			"en": {Filename: "a.mp3", FileSizeBytes: 10},
		},
	}
	assert.NoError(t, content.Validate())

	content.AudioTranslations["xx-unknown"] = &AudioTranslation{Filename: "b.mp3", FileSizeBytes: 10}
	err := content.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xx-unknown")
}

type upperSanitizer struct{}

func (upperSanitizer) Clean(html string) string { return strings.ToUpper(html) }

func TestContentIsSanitizedOnConstruction(t *testing.T) {
	caps := &Capabilities{Sanitizer: upperSanitizer{}}

	content := NewSubtitledHTML(caps, "<p>hi</p>")
	assert.Equal(t, "<P>HI</P>", content.HTML)

	hint, err := NewHintFromDict(caps, map[string]any{"hint_text": "clue"})
	require.NoError(t, err)
	assert.Equal(t, "CLUE", hint.HintText)

	outcome, err := NewOutcomeFromDict(caps, map[string]any{
		"dest":     "A",
		"feedback": []any{"good"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"GOOD"}, outcome.Feedback)
}

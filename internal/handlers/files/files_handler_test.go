// internal/handlers/files/files_handler_test.go
package files

import (
	"testing"

	"voiceai-web/internal/domain/tts"

	"github.com/stretchr/testify/assert"
)

func TestFilterFiles(t *testing.T) {
	in := []tts.VoiceFile{
		{Filename: "intro-speech.mp3", VoiceName: "Joanna"},
		{Filename: "promo.wav", VoiceName: "Matthew"},
		{Filename: "weekly-update.mp3", VoiceName: "Amy"},
	}

	t.Run("matches filename case-insensitively", func(t *testing.T) {
		got := filterFiles(in, "INTRO")
		assert.Len(t, got, 1)
		assert.Equal(t, "intro-speech.mp3", got[0].Filename)
	})

	t.Run("matches voice name", func(t *testing.T) {
		got := filterFiles(in, "matthew")
		assert.Len(t, got, 1)
		assert.Equal(t, "promo.wav", got[0].Filename)
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		assert.Empty(t, filterFiles(in, "zzz"))
	})
}

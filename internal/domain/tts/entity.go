// internal/domain/tts/entity.go
package tts

// Voice available for speech synthesis, from GET /tts/voices.
type Voice struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	LanguageCode string `json:"languageCode"`
	Gender       string `json:"gender"`
	Engine       string `json:"engine"`
}

// VoiceFile is a generated audio file owned by the user.
type VoiceFile struct {
	ID          string  `json:"id"`
	Filename    string  `json:"filename"`
	Text        string  `json:"text,omitempty"`
	VoiceID     string  `json:"voiceId"`
	VoiceName   string  `json:"voiceName"`
	Duration    float64 `json:"duration"`
	FileSize    int64   `json:"fileSize"`
	AudioURL    string  `json:"audioUrl,omitempty"`
	DownloadURL string  `json:"downloadUrl,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

// Pagination as returned by paginated list endpoints.
type Pagination struct {
	Current int  `json:"current"`
	Pages   int  `json:"pages"`
	Total   int  `json:"total"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// VoiceFilePage is the payload of GET /user/voice-files.
type VoiceFilePage struct {
	VoiceFiles []VoiceFile `json:"voiceFiles"`
	Pagination Pagination  `json:"pagination"`
}

// UsageStats from GET /user/usage.
type UsageStats struct {
	CharactersUsed      int     `json:"charactersUsed"`
	CharactersLimit     int     `json:"charactersLimit"`
	AudioFilesGenerated int     `json:"audioFilesGenerated"`
	TotalAudioDuration  float64 `json:"totalAudioDuration"`
	RemainingCharacters int     `json:"remainingCharacters"`
}

// ConvertResult is the payload of POST /tts/convert.
type ConvertResult struct {
	VoiceFile VoiceFile  `json:"voiceFile"`
	Usage     UsageStats `json:"usage"`
}

// PreviewResult is the payload of POST /tts/preview.
type PreviewResult struct {
	AudioURL string `json:"audioUrl"`
}

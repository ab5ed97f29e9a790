// internal/handlers/tts/generate_handler.go
package tts

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"voiceai-web/internal/gateway"
	"voiceai-web/internal/middleware"
	"voiceai-web/internal/pkg/xerrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const previewAudioPath = "/dashboard/generate/preview/audio"

type GenerateHandler struct {
	gw       *gateway.Client
	previews *PreviewRegistry
	logger   *zap.Logger
}

func NewGenerateHandler(gw *gateway.Client, previews *PreviewRegistry, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{gw: gw, previews: previews, logger: logger}
}

// ShowGenerate renders the conversion form with the available voices.
func (h *GenerateHandler) ShowGenerate(c *gin.Context) {
	sid := middleware.SessionID(c)
	voices, err := h.gw.Voices(c.Request.Context(), sid)
	if err != nil {
		if errors.Is(err, xerrors.ErrUnauthorized) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		h.logger.Warn("list voices failed", zap.Error(err))
	}
	c.HTML(http.StatusOK, "generate.html", gin.H{
		"Voices": voices,
		"Error":  voiceLoadError(err),
	})
}

// Preview synthesizes a short sample for the selected voice and re-renders
// the form with a player pointed at the local audio route.
func (h *GenerateHandler) Preview(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	voiceID := strings.TrimSpace(c.PostForm("voiceId"))
	sample := strings.TrimSpace(c.PostForm("sampleText"))
	if sample == "" {
		sample = "Hello! This is a preview of my voice."
	}

	voices, _ := h.gw.Voices(ctx, sid)

	if voiceID == "" {
		c.HTML(http.StatusOK, "generate.html", gin.H{
			"Voices":     voices,
			"SampleText": sample,
			"Error":      "Please choose a voice to preview.",
		})
		return
	}

	res, err := h.gw.PreviewVoice(ctx, sid, voiceID, sample)
	if err != nil {
		if errors.Is(err, xerrors.ErrUnauthorized) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		c.HTML(http.StatusOK, "generate.html", gin.H{
			"Voices":        voices,
			"SelectedVoice": voiceID,
			"SampleText":    sample,
			"Error":         bannerMessage(err, "Voice preview failed. Please try again."),
		})
		return
	}

	// One preview per session: registering the new URL releases whatever
	// stream the previous preview still held open.
	h.previews.Set(sid, res.AudioURL)

	c.HTML(http.StatusOK, "generate.html", gin.H{
		"Voices":        voices,
		"SelectedVoice": voiceID,
		"SampleText":    sample,
		"PreviewURL":    previewAudioPath,
	})
}

// PreviewAudio streams the session's active preview to the browser.
func (h *GenerateHandler) PreviewAudio(c *gin.Context) {
	sid := middleware.SessionID(c)
	url, ok := h.previews.URL(sid)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	body, contentType, err := h.gw.FetchAudio(c.Request.Context(), url)
	if err != nil {
		h.logger.Warn("fetch preview audio failed", zap.Error(err))
		c.Status(http.StatusBadGateway)
		return
	}
	h.previews.Attach(sid, body)
	defer func() {
		h.previews.Detach(sid)
		body.Close()
	}()

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		h.logger.Debug("preview stream interrupted", zap.Error(err))
	}
}

// Generate converts the submitted text and re-renders the form with a player
// for the new file.
func (h *GenerateHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	text := strings.TrimSpace(c.PostForm("text"))
	voiceID := strings.TrimSpace(c.PostForm("voiceId"))
	format := c.DefaultPostForm("outputFormat", "mp3")

	voices, _ := h.gw.Voices(ctx, sid)

	if text == "" || voiceID == "" {
		c.HTML(http.StatusOK, "generate.html", gin.H{
			"Voices":        voices,
			"SelectedVoice": voiceID,
			"Text":          text,
			"Error":         "Please enter some text and choose a voice.",
		})
		return
	}

	res, err := h.gw.Convert(ctx, sid, &gateway.ConvertRequest{
		Text:         text,
		VoiceID:      voiceID,
		OutputFormat: format,
	})
	if err != nil {
		if errors.Is(err, xerrors.ErrUnauthorized) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		c.HTML(http.StatusOK, "generate.html", gin.H{
			"Voices":        voices,
			"SelectedVoice": voiceID,
			"Text":          text,
			"Error":         bannerMessage(err, "Audio generation failed. Please try again."),
		})
		return
	}

	generated := res.VoiceFile.AudioURL
	if generated == "" {
		generated = res.VoiceFile.DownloadURL
	}

	c.HTML(http.StatusOK, "generate.html", gin.H{
		"Voices":        voices,
		"SelectedVoice": voiceID,
		"GeneratedURL":  generated,
		"Success":       "Audio generated successfully.",
	})
}

func voiceLoadError(err error) string {
	if err == nil {
		return ""
	}
	return "Could not load voices. Please refresh and try again."
}

func bannerMessage(err error, fallback string) string {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// internal/gateway/tts.go
package gateway

import (
	"context"
	"fmt"
	"net/url"

	"voiceai-web/internal/domain/tts"
)

// Voices lists the voices available to the account.
func (c *Client) Voices(ctx context.Context, sid string) ([]tts.Voice, error) {
	var out []tts.Voice
	if err := c.get(ctx, sid, "/tts/voices", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PreviewVoice synthesizes a short sample and returns its audio URL.
func (c *Client) PreviewVoice(ctx context.Context, sid, voiceID, sampleText string) (*tts.PreviewResult, error) {
	var out tts.PreviewResult
	err := c.post(ctx, sid, "/tts/preview", map[string]string{
		"voiceId":    voiceID,
		"sampleText": sampleText,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ConvertRequest are the parameters for a text-to-speech conversion.
type ConvertRequest struct {
	Text         string `json:"text"`
	VoiceID      string `json:"voiceId"`
	OutputFormat string `json:"outputFormat"`
	Engine       string `json:"engine,omitempty"`
}

// Convert synthesizes speech for the given text.
func (c *Client) Convert(ctx context.Context, sid string, req *ConvertRequest) (*tts.ConvertResult, error) {
	var out tts.ConvertResult
	if err := c.post(ctx, sid, "/tts/convert", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VoiceFiles lists the user's generated files, paginated.
func (c *Client) VoiceFiles(ctx context.Context, sid string, page, limit int) (*tts.VoiceFilePage, error) {
	var out tts.VoiceFilePage
	path := fmt.Sprintf("/user/voice-files?page=%d&limit=%d", page, limit)
	if err := c.get(ctx, sid, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteVoiceFile removes one generated file.
func (c *Client) DeleteVoiceFile(ctx context.Context, sid, fileID string) error {
	return c.delete(ctx, sid, "/user/voice-files/"+url.PathEscape(fileID), nil, nil)
}

// DownloadURL fetches a short-lived download URL for a file.
func (c *Client) DownloadURL(ctx context.Context, sid, fileID string) (string, error) {
	var out struct {
		DownloadURL string `json:"downloadUrl"`
	}
	if err := c.get(ctx, sid, "/tts/download/"+url.PathEscape(fileID), &out); err != nil {
		return "", err
	}
	return out.DownloadURL, nil
}

// Usage fetches the account's usage statistics.
func (c *Client) Usage(ctx context.Context, sid string) (*tts.UsageStats, error) {
	var out tts.UsageStats
	if err := c.get(ctx, sid, "/user/usage", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

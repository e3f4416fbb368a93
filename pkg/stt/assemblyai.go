package stt

import (
	"context"
	"fmt"
	"io"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/google/uuid"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
	"github.com/foyer-app/foyer-voice/pkg/config"
)

// AssemblyAIClient wraps the official SDK for the voice pipeline
type AssemblyAIClient struct {
	client     *aai.Client
	webhookURL string
}

// NewAssemblyAIClient creates a client from config
func NewAssemblyAIClient(cfg *config.AssemblyConfig) *AssemblyAIClient {
	return &AssemblyAIClient{
		client:     aai.NewClient(cfg.APIKey),
		webhookURL: cfg.WebhookURL,
	}
}

// Upload streams raw audio to AssemblyAI and returns the hosted URL
func (c *AssemblyAIClient) Upload(ctx context.Context, audio io.Reader) (string, error) {
	uploadURL, err := c.client.Upload(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("failed to upload to AssemblyAI: %w", err)
	}
	return uploadURL, nil
}

// Submit requests transcription of an audio URL. Returns the provider's
// transcript id. Completion arrives on the webhook when one is configured.
func (c *AssemblyAIClient) Submit(ctx context.Context, audioURL, language string) (string, error) {
	params := &aai.TranscriptOptionalParams{
		LanguageCode:  aai.TranscriptLanguageCode(language),
		SpeakerLabels: aai.Bool(true),
	}
	if c.webhookURL != "" {
		params.WebhookURL = &c.webhookURL
	}

	transcript, err := c.client.Transcripts.TranscribeFromURL(ctx, audioURL, params)
	if err != nil {
		return "", err
	}
	if transcript.ID == nil {
		return "", fmt.Errorf("assemblyai returned no transcript id")
	}
	return *transcript.ID, nil
}

// Fetch retrieves a finished transcript and maps it onto the domain result.
// audioID ties the result back to the originating upload.
func (c *AssemblyAIClient) Fetch(ctx context.Context, transcriptID string, audioID uuid.UUID) (*entities.TranscriptionResult, error) {
	started := time.Now()
	transcript, err := c.client.Transcripts.Get(ctx, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "transcription failed"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, fmt.Errorf("assemblyai: %s", msg)
	}

	result := &entities.TranscriptionResult{
		ID:           uuid.New(),
		AudioID:      audioID,
		Provider:     "assemblyai",
		ProcessingMS: time.Since(started).Milliseconds(),
		CreatedAt:    time.Now(),
	}
	if transcript.Text != nil {
		result.Text = *transcript.Text
	}
	if transcript.LanguageCode != "" {
		result.Language = string(transcript.LanguageCode)
	}
	if transcript.Confidence != nil {
		result.Confidence = *transcript.Confidence
	}
	if transcript.AudioDuration != nil {
		result.Duration = *transcript.AudioDuration
	}

	if len(transcript.Words) > 0 {
		words := make([]entities.WordTimestamp, 0, len(transcript.Words))
		for _, w := range transcript.Words {
			word := entities.WordTimestamp{}
			if w.Text != nil {
				word.Word = *w.Text
			}
			if w.Start != nil {
				word.Start = float64(*w.Start) / 1000.0 // ms to seconds
			}
			if w.End != nil {
				word.End = float64(*w.End) / 1000.0
			}
			if w.Confidence != nil {
				word.Confidence = *w.Confidence
			}
			words = append(words, word)
		}
		result.Words = words
	}

	if len(transcript.Utterances) > 0 {
		segments := make([]entities.TranscriptSegment, 0, len(transcript.Utterances))
		for _, utt := range transcript.Utterances {
			segment := entities.TranscriptSegment{}
			if utt.Text != nil {
				segment.Text = *utt.Text
			}
			if utt.Speaker != nil {
				segment.Speaker = *utt.Speaker
			}
			if utt.Start != nil {
				segment.Start = float64(*utt.Start) / 1000.0
			}
			if utt.End != nil {
				segment.End = float64(*utt.End) / 1000.0
			}
			if utt.Confidence != nil {
				segment.Confidence = *utt.Confidence
			}
			segments = append(segments, segment)
		}
		result.Segments = segments
	}

	return result, nil
}

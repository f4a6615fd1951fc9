package ingest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"kosh/internal/domain"
	"kosh/internal/logger"
	"kosh/internal/port"
)

// VoiceAdapter ingests spoken transaction descriptions: transcription first,
// then language extraction on the transcript.
type VoiceAdapter struct {
	transcriber port.Transcriber
	extractor   port.Extractor
	log         zerolog.Logger
}

// NewVoiceAdapter creates a VoiceAdapter.
func NewVoiceAdapter(transcriber port.Transcriber, extractor port.Extractor) *VoiceAdapter {
	return &VoiceAdapter{
		transcriber: transcriber,
		extractor:   extractor,
		log:         logger.WithComponent("voice-adapter"),
	}
}

// Ingest transcribes the clip and extracts items from the transcript. An
// empty transcript is terminal: the user must re-record, the pipeline never
// retries it.
func (a *VoiceAdapter) Ingest(ctx context.Context, audio []byte, contentType string, categories domain.CategorySet) (*domain.NormalizedBill, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("no audio provided: %w", domain.ErrMissingInput)
	}

	transcript, err := a.transcriber.Transcribe(ctx, audio, contentType)
	if err != nil {
		a.log.Error().Err(err).Msg("transcription failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	if transcript == "" {
		return nil, domain.ErrEmptyTranscript
	}
	a.log.Debug().Str("transcript", transcript).Msg("transcribed voice clip")

	ex, err := a.extractor.ExtractUtterance(ctx, transcript, categories)
	if err != nil {
		a.log.Error().Err(err).Msg("utterance extraction failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	bill := billFromExtraction(ex, domain.SourceVoice, categories.Fallback())
	bill.Transcript = transcript
	if err := validateExtractedBill(bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// Package generation holds the placeholder content producers, one Strategy
// per content type, plus the Registry that dispatches on domain.ContentType.
//
// No model is called. Each strategy renders a fixed template around the
// prompt; the Strategy seam is where a real model client would attach.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
)

// ErrEmptyPrompt is returned by strategies for a blank prompt.
var ErrEmptyPrompt = errors.New("prompt is empty")

// Default model names reported per content type.
const (
	ModelText     = "Qwen/QwQ-32B"
	ModelImage    = "stabilityai/stable-diffusion-xl-base-1.0"
	ModelVideo    = "Lightricks/LTX-Video"
	ModelAudio    = "fishaudio/fish-speech-1.5"
	ModelFallback = "generic-placeholder"
)

// Strategy produces content for one content type.
type Strategy interface {
	// Model names the (simulated) model behind the strategy.
	Model() string
	// Generate returns a placeholder string or URL for prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// TextStrategy renders an article stub that quotes the prompt.
type TextStrategy struct {
	// Locale drives lower-casing of the prompt; Und means language-neutral.
	Locale language.Tag
}

func (TextStrategy) Model() string { return ModelText }

func (s TextStrategy) Generate(ctx context.Context, prompt string) (string, error) {
	if err := check(ctx, prompt); err != nil {
		return "", err
	}
	lower := cases.Lower(s.Locale).String(prompt)
	return fmt.Sprintf("AI-generated content based on: '%s'. This is a comprehensive article about %s that covers all important aspects...", prompt, lower), nil
}

// ImageStrategy returns a placeholder image URL.
type ImageStrategy struct{}

func (ImageStrategy) Model() string { return ModelImage }

func (ImageStrategy) Generate(ctx context.Context, prompt string) (string, error) {
	if err := check(ctx, prompt); err != nil {
		return "", err
	}
	return "https://via.placeholder.com/800x600/165DFF/FFFFFF?text=AI+Generated+Image", nil
}

// VideoStrategy acknowledges a video job.
type VideoStrategy struct{}

func (VideoStrategy) Model() string { return ModelVideo }

func (VideoStrategy) Generate(ctx context.Context, prompt string) (string, error) {
	if err := check(ctx, prompt); err != nil {
		return "", err
	}
	return "Video generation initiated for: " + prompt, nil
}

// AudioStrategy acknowledges an audio synthesis.
type AudioStrategy struct{}

func (AudioStrategy) Model() string { return ModelAudio }

func (AudioStrategy) Generate(ctx context.Context, prompt string) (string, error) {
	if err := check(ctx, prompt); err != nil {
		return "", err
	}
	return "Audio synthesis completed for: " + prompt, nil
}

// CodeStrategy renders a JavaScript stub headed by the prompt.
type CodeStrategy struct{}

func (CodeStrategy) Model() string { return ModelText }

func (CodeStrategy) Generate(ctx context.Context, prompt string) (string, error) {
	if err := check(ctx, prompt); err != nil {
		return "", err
	}
	// Keep the prompt on the comment line.
	oneLine := strings.Join(strings.Fields(prompt), " ")
	return "// AI-generated code for: " + oneLine + "\n" +
		"function optimizeWebsite() {\n" +
		"    // Implementation here\n" +
		"    return 'optimized';\n" +
		"}", nil
}

// FallbackStrategy serves content types with no dedicated strategy.
type FallbackStrategy struct{}

func (FallbackStrategy) Model() string { return ModelFallback }

func (FallbackStrategy) Generate(ctx context.Context, prompt string) (string, error) {
	if err := check(ctx, prompt); err != nil {
		return "", err
	}
	return "Generated content for: " + prompt, nil
}

func check(ctx context.Context, prompt string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(prompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// defaultStrategy is the built-in mapping. Every known content type must
// have a case here.
func defaultStrategy(ct domain.ContentType) Strategy {
	switch ct {
	case domain.ContentText:
		return TextStrategy{Locale: language.Und}
	case domain.ContentImage:
		return ImageStrategy{}
	case domain.ContentVideo:
		return VideoStrategy{}
	case domain.ContentAudio:
		return AudioStrategy{}
	case domain.ContentCode:
		return CodeStrategy{}
	default:
		return FallbackStrategy{}
	}
}

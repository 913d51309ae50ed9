// Package detect provides language classification for the relay.
package detect

import (
	"errors"
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/lingobridge/lingobridge"
)

// ErrUndetectable is returned when no language can be determined for a text.
var ErrUndetectable = errors.New("language could not be detected")

// Detector classifies text with trigram-based detection (whatlanggo).
type Detector struct{}

// NewDetector creates a language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Classify returns the best-guess ISO 639-1 language code and a confidence
// score in [0, 1]. Empty or undetectable text fails with ErrUndetectable;
// the relay treats that as a pass-through decision, not an error.
func (d *Detector) Classify(text string) (lingobridge.Detection, error) {
	if strings.TrimSpace(text) == "" {
		return lingobridge.Detection{}, ErrUndetectable
	}

	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" {
		return lingobridge.Detection{}, ErrUndetectable
	}

	confidence := info.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return lingobridge.Detection{
		Language:   code,
		Confidence: confidence,
	}, nil
}

// Verify Detector implements the relay's Classifier interface
var _ lingobridge.Classifier = (*Detector)(nil)

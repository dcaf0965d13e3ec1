// Package model defines the core domain models used throughout the application.
package model

import (
	"strings"
	"time"
)

// CallDirection indicates whether a call was received or placed.
type CallDirection string

// Call direction constants.
const (
	DirectionInbound  CallDirection = "inbound"
	DirectionOutbound CallDirection = "outbound"
)

// Call represents a single phone call record from the telephony platform.
// Calls are immutable once ingested.
type Call struct {
	StartTime     time.Time
	ID            string
	Direction     CallDirection
	CustomerPhone string
	CustomerName  string
	CustomerCity  string
	CustomerState string
	Source        string
	Duration      int // seconds
	Answered      bool
	Voicemail     bool
	HasRecording  bool
}

// Utterance is a single speaker-segmented chunk of a transcript.
type Utterance struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
	StartMs int    `json:"start_ms"`
	EndMs   int    `json:"end_ms"`
}

// Transcript holds the transcribed text for one call. It is produced by
// the external transcription service and read-only to the classifier.
type Transcript struct {
	CallID     string
	Text       string
	Utterances []Utterance
	Confidence float64 // transcription confidence in [0,1]
}

// SpeakerCount returns the number of distinct speakers in the transcript.
func (t *Transcript) SpeakerCount() int {
	if t == nil {
		return 0
	}
	seen := make(map[string]struct{})
	for _, u := range t.Utterances {
		seen[u.Speaker] = struct{}{}
	}
	return len(seen)
}

// WordCount returns the number of whitespace-separated words in the text.
func (t *Transcript) WordCount() int {
	if t == nil {
		return 0
	}
	return len(strings.Fields(t.Text))
}

package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhinobuilders/callsift/internal/common"
	"github.com/rhinobuilders/callsift/internal/model"
)

func TestDecodeExport(t *testing.T) {
	data := `[
		{
			"id": "CAL123",
			"direction": "inbound",
			"duration": 95,
			"start_time": "2025-10-06T09:30:00Z",
			"customer_phone": "+15105551234",
			"customer_city": "Berkeley",
			"customer_state": "CA",
			"answered": true,
			"voicemail": false,
			"source": "google_ads",
			"transcript_text": "Hi, I need an estimate for a concrete driveway.",
			"transcript_confidence": 0.91,
			"utterances": [
				{"speaker": "caller", "text": "Hi, I need an estimate for a concrete driveway.", "start_ms": 0, "end_ms": 2800}
			]
		},
		{
			"id": "CAL124",
			"direction": "outbound",
			"duration": 12,
			"start_time": "2025-10-06 10:15:00",
			"answered": false,
			"voicemail": false
		}
	]`

	calls, transcripts, err := DecodeExport(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, calls, 2)
	require.Len(t, transcripts, 1)

	first := calls[0]
	assert.Equal(t, "CAL123", first.ID)
	assert.Equal(t, model.DirectionInbound, first.Direction)
	assert.Equal(t, 95, first.Duration)
	assert.Equal(t, "Berkeley", first.CustomerCity)
	assert.True(t, first.HasRecording, "answered call implies a recording")
	assert.True(t, first.StartTime.Equal(time.Date(2025, 10, 6, 9, 30, 0, 0, time.UTC)))

	second := calls[1]
	assert.Equal(t, model.DirectionOutbound, second.Direction)
	assert.False(t, second.HasRecording)

	tr := transcripts[0]
	assert.Equal(t, "CAL123", tr.CallID)
	assert.InDelta(t, 0.91, tr.Confidence, 1e-9)
	require.Len(t, tr.Utterances, 1)
	assert.Equal(t, "caller", tr.Utterances[0].Speaker)
}

func TestDecodeExport_Defaults(t *testing.T) {
	data := `[{"id": "CAL200", "start_time": "2025-10-06T08:00:00Z", "duration": -5, "has_recording": true}]`

	calls, transcripts, err := DecodeExport(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Empty(t, transcripts)

	call := calls[0]
	assert.Equal(t, model.DirectionInbound, call.Direction, "missing direction defaults to inbound")
	assert.Equal(t, 0, call.Duration, "negative duration clamps to zero")
	assert.True(t, call.HasRecording, "explicit flag wins over the answered heuristic")
}

func TestDecodeExport_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{
			name: "not json",
			data: `call_id,direction`,
			want: common.ErrInvalidExport,
		},
		{
			name: "missing id",
			data: `[{"direction": "inbound"}]`,
			want: common.ErrMissingCallID,
		},
		{
			name: "bad direction",
			data: `[{"id": "x", "direction": "sideways"}]`,
			want: common.ErrInvalidExport,
		},
		{
			name: "bad start time",
			data: `[{"id": "x", "start_time": "yesterday"}]`,
			want: common.ErrInvalidExport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeExport(strings.NewReader(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeTranscripts(t *testing.T) {
	data := `[
		{"call_id": "CAL123", "text": "Hello there.", "confidence": 0.88},
		{"call_id": "CAL124", "text": "", "utterances": [{"speaker": "agent", "text": "Hi."}]}
	]`

	transcripts, err := DecodeTranscripts(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, transcripts, 2)
	assert.Equal(t, "Hello there.", transcripts[0].Text)
	assert.Len(t, transcripts[1].Utterances, 1)

	_, err = DecodeTranscripts(strings.NewReader(`[{"text": "orphan"}]`))
	assert.ErrorIs(t, err, common.ErrMissingCallID)
}

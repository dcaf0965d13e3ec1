package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhinobuilders/callsift/internal/model"
	"github.com/rhinobuilders/callsift/internal/rules"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier(rules.Catalog())
	require.NoError(t, err)
	return c
}

func inboundCall(id string, duration int) model.Call {
	return model.Call{
		ID:           id,
		Direction:    model.DirectionInbound,
		Duration:     duration,
		Answered:     true,
		HasRecording: true,
	}
}

func transcript(callID, text string) *model.Transcript {
	return &model.Transcript{CallID: callID, Text: text}
}

func TestClassify_EmptyTranscriptShortCall(t *testing.T) {
	c := newTestClassifier(t)
	call := model.Call{ID: "c1", Direction: model.DirectionInbound, Duration: 8}

	result := c.Classify(call, transcript("c1", ""))

	assert.Equal(t, model.CategoryIncomplete, result.Category)
	assert.Equal(t, model.IncompleteTooShort, result.SubCategory)
	assert.Equal(t, "8s call - too short to classify", result.Summary)
	assert.Empty(t, result.Entities.Name)
}

func TestClassify_NilTranscript(t *testing.T) {
	c := newTestClassifier(t)

	result := c.Classify(inboundCall("c1", 45), nil)

	assert.Equal(t, model.CategoryIncomplete, result.Category)
	assert.Equal(t, model.IncompleteTranscriptionFailed, result.SubCategory)
}

func TestClassify_GoogleListingScam(t *testing.T) {
	c := newTestClassifier(t)
	text := "Hello, this is an important message regarding your Google Business listing. Press 1 to speak with a specialist now."

	result := c.Classify(inboundCall("c2", 35), transcript("c2", text))

	assert.Equal(t, model.CategorySpam, result.Category)
	assert.Equal(t, "google_listing", result.SubCategory)
	assert.GreaterOrEqual(t, result.Confidence, 0.85)
	assert.Equal(t, model.ConfidenceHigh, result.Level())
}

func TestClassify_SupplierPurchase(t *testing.T) {
	c := newTestClassifier(t)
	text := "Hi, this is Mike at Home Depot about the phone sale. Your total comes to $243.17 for the Lafayette job, I just need the card number."

	result := c.Classify(inboundCall("c3", 120), transcript("c3", text))

	assert.Equal(t, model.CategoryOperations, result.Category)
	assert.Equal(t, "vendor_purchase", result.SubCategory)
	assert.Equal(t, "$243.17", result.Entities.Amount)
	assert.GreaterOrEqual(t, result.Confidence, 0.85)
}

func TestClassify_BathroomRemodelLead(t *testing.T) {
	c := newTestClassifier(t)
	text := "Hi, I'm interested in a bathroom remodel for my house. My address is 12 Oak Street if you want to come take a look."

	result := c.Classify(inboundCall("c4", 95), transcript("c4", text))

	assert.Equal(t, model.CategoryCustomer, result.Category)
	assert.Equal(t, "bathroom_remodel", result.SubCategory)
	assert.Equal(t, "12 Oak Street", result.Entities.Address)
	assert.GreaterOrEqual(t, result.Confidence, 0.85)
	assert.Contains(t, result.Summary, "Bathroom remodel")
	assert.Contains(t, result.Summary, "12 Oak Street")
}

func TestClassify_SpamOutranksCustomerSignals(t *testing.T) {
	c := newTestClassifier(t)
	// Robocall language wins even when customer topic words appear in
	// the same transcript.
	text := "Please press one to speak with an agent about a free driveway estimate for your property today."

	result := c.Classify(inboundCall("c5", 40), transcript("c5", text))

	assert.Equal(t, model.CategorySpam, result.Category)
	assert.Equal(t, "robocall", result.SubCategory)
}

func TestClassify_SingleWeakSpamYieldsToCustomer(t *testing.T) {
	c := newTestClassifier(t)
	// One low-tier spam hit with customer evidence present is not
	// decisive; the call falls through to the customer stage.
	text := "Hi, we spoke to your sales team last year about our patio. We want a new estimate for redoing the concrete out back."

	result := c.Classify(inboundCall("c6", 80), transcript("c6", text))

	assert.Equal(t, model.CategoryCustomer, result.Category)
}

func TestClassify_JobSeekerBeforeCustomer(t *testing.T) {
	c := newTestClassifier(t)
	text := "Hey, are you guys hiring right now? I have ten years experience pouring concrete and doing foundation work."

	result := c.Classify(inboundCall("c7", 55), transcript("c7", text))

	assert.Equal(t, model.CategoryOtherInquiry, result.Category)
	assert.Equal(t, "job_seeker", result.SubCategory)
	assert.Contains(t, result.Reasoning, "Job seeker inquiry - not a customer lead")
}

func TestClassify_IncompletenessDominates(t *testing.T) {
	c := newTestClassifier(t)
	// "yelp" is a high-tier spam keyword, but there is no usable
	// transcript so the incompleteness gate fires first.
	result := c.Classify(inboundCall("c8", 30), transcript("c8", "Yelp."))

	assert.Equal(t, model.CategoryIncomplete, result.Category)
	assert.Equal(t, model.IncompleteTranscriptionFailed, result.SubCategory)
}

func TestClassify_MissedCall(t *testing.T) {
	c := newTestClassifier(t)
	call := model.Call{ID: "c9", Direction: model.DirectionInbound, Duration: 25}

	result := c.Classify(call, nil)

	assert.Equal(t, model.CategoryIncomplete, result.Category)
	assert.Equal(t, model.IncompleteMissedCall, result.SubCategory)
}

func TestClassify_BriefExchange(t *testing.T) {
	c := newTestClassifier(t)
	text := "Hello? Hello. Hi, good morning. Okay. Thanks, bye. Bye."

	result := c.Classify(inboundCall("c10", 22), transcript("c10", text))

	assert.Equal(t, model.CategoryIncomplete, result.Category)
	assert.Equal(t, model.IncompleteBriefExchange, result.SubCategory)
}

func TestClassify_Fallbacks(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name        string
		call        model.Call
		transcript  *model.Transcript
		category    model.Category
		subCategory string
	}{
		{
			name:        "wrong number",
			call:        inboundCall("f1", 25),
			transcript:  transcript("f1", "Oh, so sorry, I think I must have the wrong number. My apologies for bothering."),
			category:    model.CategoryIncomplete,
			subCategory: model.IncompleteWrongNumber,
		},
		{
			name:        "rejection language",
			call:        inboundCall("f2", 30),
			transcript:  transcript("f2", "No thank you, we are not interested at all, take us off whatever that is."),
			category:    model.CategorySpam,
			subCategory: "cold_call",
		},
		{
			name: "outbound defaults to operations",
			call: model.Call{ID: "f3", Direction: model.DirectionOutbound, Duration: 40, Answered: true, HasRecording: true},
			transcript: transcript("f3",
				"Hey, it's me again. Give me a ring whenever you get a chance, nothing urgent."),
			category:    model.CategoryOperations,
			subCategory: "outbound_followup",
		},
		{
			name: "inbound voicemail with content",
			call: model.Call{ID: "f4", Direction: model.DirectionInbound, Duration: 35, Voicemail: true, HasRecording: true},
			transcript: transcript("f4",
				"Hey, this is Sandra, um, give me a call whenever you get this, thanks so much, bye."),
			category:    model.CategoryCustomer,
			subCategory: "voicemail_inquiry",
		},
		{
			name: "long inbound conversation",
			call: inboundCall("f5", 240),
			transcript: transcript("f5",
				"Uh huh. Right. Uh huh. Mm hmm. Yeah that makes sense. Uh huh. Right then. Uh huh. Sure thing. Mm hmm."),
			category:    model.CategoryCustomer,
			subCategory: "general_inquiry",
		},
		{
			name: "unclear content",
			call: inboundCall("f6", 45),
			transcript: transcript("f6",
				"Uh huh. Right. Uh huh. Mm hmm. Yeah sure. Uh huh. Right then. Mm hmm."),
			category:    model.CategoryIncomplete,
			subCategory: model.IncompleteUnclear,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(tt.call, tt.transcript)
			assert.Equal(t, tt.category, result.Category)
			assert.Equal(t, tt.subCategory, result.SubCategory)
			assert.NotEmpty(t, result.Reasoning)
		})
	}
}

func TestClassify_MultiSpeakerServiceDiscussion(t *testing.T) {
	c := newTestClassifier(t)
	call := inboundCall("m1", 90)
	tr := &model.Transcript{
		CallID: "m1",
		Text:   "So yeah we were thinking about the whole back section there. Mm hmm. And then over by the fence as well. Uh huh, sure. It is for the house we just bought.",
		Utterances: []model.Utterance{
			{Speaker: "A", Text: "So yeah we were thinking about the whole back section there."},
			{Speaker: "B", Text: "Mm hmm."},
		},
	}

	result := c.Classify(call, tr)

	assert.Equal(t, model.CategoryCustomer, result.Category)
}

func TestClassify_Deterministic(t *testing.T) {
	c := newTestClassifier(t)
	call := inboundCall("d1", 75)
	tr := transcript("d1", "Hi, my name is Laura. I need an estimate for a new driveway, the old concrete is all cracked.")

	first := c.Classify(call, tr)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Classify(call, tr))
	}
}

func TestClassify_Totality(t *testing.T) {
	c := newTestClassifier(t)

	calls := []struct {
		call model.Call
		tr   *model.Transcript
	}{
		{model.Call{ID: "t1"}, nil},
		{inboundCall("t2", 5), transcript("t2", "")},
		{inboundCall("t3", 300), transcript("t3", "We want a full kitchen renovation with new everything, how soon can someone come out?")},
		{model.Call{ID: "t4", Direction: model.DirectionOutbound, Duration: 60, Answered: true, HasRecording: true}, transcript("t4", "Just checking in on that thing from yesterday, it all went through fine on our side.")},
		{inboundCall("t5", 15), transcript("t5", "Is this the pizza place on Main?")},
	}

	for _, tc := range calls {
		result := c.Classify(tc.call, tc.tr)
		assert.True(t, result.Category.IsValid(), "call %s got invalid category %q", tc.call.ID, result.Category)
		assert.Greater(t, result.Confidence, 0.0, "call %s", tc.call.ID)
		assert.LessOrEqual(t, result.Confidence, 1.0, "call %s", tc.call.ID)
		assert.NotEmpty(t, result.Summary, "call %s", tc.call.ID)
	}
}

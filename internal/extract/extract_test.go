package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "my name is",
			text: "Hi, my name is Marcus and I'm looking for an estimate.",
			want: "Marcus",
		},
		{
			name: "this is X calling",
			text: "Hello, this is Diane calling about my driveway.",
			want: "Diane",
		},
		{
			name: "this is X from",
			text: "Hey, this is Omar from the Lafayette job site.",
			want: "Omar",
		},
		{
			name: "X here",
			text: "Brendan here, just confirming tomorrow's appointment.",
			want: "Brendan",
		},
		{
			name: "greeting word is rejected",
			text: "Hello, this is Hello calling.",
			want: "",
		},
		{
			name: "stop word then real name",
			text: "This is calling... sorry, my name is Teresa.",
			want: "Teresa",
		},
		{
			name: "no self identification",
			text: "I'd like a quote for a patio please.",
			want: "",
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.text))
		})
	}
}

func TestAddress(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "full street suffix",
			text: "My address is 12 Oak Street in Walnut Creek.",
			want: "12 Oak Street",
		},
		{
			name: "abbreviated suffix",
			text: "The job is at 4580 Canyon View Dr if you want to stop by.",
			want: "4580 Canyon View Dr",
		},
		{
			name: "boulevard",
			text: "We're over on 1200 Monument Boulevard near the overpass.",
			want: "1200 Monument Boulevard",
		},
		{
			name: "number without suffix is not an address",
			text: "It's about 400 square feet of concrete.",
			want: "",
		},
		{
			name: "no address",
			text: "Please call me back when you get a chance.",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Address(tt.text))
		})
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "dollars and cents",
			text: "Home Depot phone sale, $243.17 for the Lafayette job.",
			want: "$243.17",
		},
		{
			name: "thousands separator",
			text: "The estimate came to $12,500 for the whole patio.",
			want: "$12,500",
		},
		{
			name: "bare number is not an amount",
			text: "Call me back at 925 555 0148.",
			want: "",
		},
		{
			name: "first amount wins",
			text: "It was $80 for the bags and $45.50 for rebar.",
			want: "$80",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Amount(tt.text))
		})
	}
}

func TestEntities(t *testing.T) {
	got := Entities("Hi, my name is Priya, I'm at 88 Alder Ct and my budget is $9,000.")
	assert.Equal(t, "Priya", got.Name)
	assert.Equal(t, "88 Alder Ct", got.Address)
	assert.Equal(t, "$9,000", got.Amount)

	empty := Entities("")
	assert.Empty(t, empty.Name)
	assert.Empty(t, empty.Address)
	assert.Empty(t, empty.Amount)
}

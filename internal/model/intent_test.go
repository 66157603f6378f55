package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDataType(t *testing.T) {
	assert.Equal(t, DataTypeUnemployment, ParseDataType("unemployment"))
	assert.Equal(t, DataTypeCPI, ParseDataType("cpi"))
	assert.Equal(t, DataTypeGeneral, ParseDataType("weather"))
	assert.Equal(t, DataTypeGeneral, ParseDataType(""))
}

func TestIntent_Fetchable(t *testing.T) {
	tests := []struct {
		name   string
		intent Intent
		want   bool
	}{
		{
			name:   "complete",
			intent: Intent{SeriesIDs: []string{"LNS14000000"}, StartYear: "2023", EndYear: "2024"},
			want:   true,
		},
		{
			name:   "no series",
			intent: Intent{StartYear: "2023", EndYear: "2024"},
			want:   false,
		},
		{
			name:   "missing start year",
			intent: Intent{SeriesIDs: []string{"LNS14000000"}, EndYear: "2024"},
			want:   false,
		},
		{
			name:   "missing end year",
			intent: Intent{SeriesIDs: []string{"LNS14000000"}, StartYear: "2023"},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.intent.Fetchable())
		})
	}
}

func TestTranscript_Append(t *testing.T) {
	var base Transcript

	one := base.Append(RoleUser, "hello")
	two := one.Append(RoleAssistant, "hi")

	assert.Empty(t, base)
	assert.Len(t, one, 1)
	assert.Len(t, two, 2)
	assert.Equal(t, Turn{Role: RoleUser, Content: "hello"}, two[0])
	assert.Equal(t, Turn{Role: RoleAssistant, Content: "hi"}, two[1])
}

func TestTranscript_AppendDoesNotAliasBacking(t *testing.T) {
	base := Transcript{{Role: RoleUser, Content: "first"}}

	a := base.Append(RoleAssistant, "branch a")
	b := base.Append(RoleAssistant, "branch b")

	assert.Equal(t, "branch a", a[1].Content)
	assert.Equal(t, "branch b", b[1].Content)
	assert.Equal(t, "first", base[0].Content)
}

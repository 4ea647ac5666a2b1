package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackMessage_KeywordPriority(t *testing.T) {
	cases := map[string]string{
		"help with my skills":        fallbackSkills,
		"my work history":            fallbackExperience,
		"Experience section":         fallbackExperience,
		"applicant tracking systems": fallbackATS,
		"ATS please":                 fallbackATS,
		"can you help?":              fallbackHelp,
		"hello":                      fallbackDefault,
	}
	for msg, want := range cases {
		assert.Equal(t, want, FallbackMessage(msg), msg)
	}
}

func TestFallbackReply_HasNoEdits(t *testing.T) {
	r := FallbackReply("hello")
	assert.NotNil(t, r.Edits)
	assert.Empty(t, r.Edits)
}

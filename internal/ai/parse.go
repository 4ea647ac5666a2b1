package ai

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/edit"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/logger"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/metrics"
)

// Reply is the parsed form of a model response: prose for the user and the
// edit proposals that came with it. Edits is never nil.
type Reply struct {
	Message string          `json:"message"`
	Edits   []edit.Proposal `json:"edits"`
}

// Parse outcomes, also used as metric labels.
const (
	OutcomeOK         = "ok"
	OutcomeTruncated  = "truncated"
	OutcomeVerbose    = "verbose"
	OutcomeUnbalanced = "unbalanced"
	OutcomeFallback   = "fallback"
	OutcomeNone       = "none"
)

// User-visible text appended or substituted when a response degrades.
const (
	TruncatedWarning  = "\n\n⚠️ Response was incomplete. Please try asking again for complete suggestions."
	UnbalancedWarning = "\n\n⚠️ JSON response was incomplete. Please try again."
	VerboseMessage    = "Response was too verbose. Please provide more concise feedback."
)

// MaxProseLength is the longest prose, outside the JSON block, accepted.
const MaxProseLength = 1000

// Pre-compiled patterns for pulling the edit list out of a response.
var (
	// anyObjectPattern matches from the first { to the last } (greedy).
	anyObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)
	// editsObjectPattern matches {"edits": [ ... ]} up to the first ] that is followed by }.
	editsObjectPattern = regexp.MustCompile(`(?s)\{\s*"edits"\s*:\s*\[.*?\]\s*\}`)
	// editsFragmentPattern matches a bare "edits": [...] pair without nested arrays.
	editsFragmentPattern = regexp.MustCompile(`"edits"\s*:\s*\[[^\]]*\]`)
)

// markers of a response that already reports itself as cut off
var truncationMarkers = []string{
	"⚠️ Response was truncated",
	"⚠️ Response was incomplete",
	"JSON was cut off",
	"JSON was malformed",
	"JSON response was incomplete",
	"JSON response was malformed",
}

type editsEnvelope struct {
	Edits []edit.Proposal `json:"edits"`
}

// ParseResponse extracts the prose message and trailing edit list from raw
// model output. It never fails: anything it cannot read degrades to the raw
// text (plus a warning where applicable) with no edits.
func ParseResponse(raw string) Reply {
	reply, outcome := parseResponse(raw)
	metrics.ResponseParses.WithLabelValues(outcome).Inc()
	if outcome != OutcomeOK {
		logger.Debugf("ai response parse outcome=%s length=%d", outcome, len(raw))
	}
	return reply
}

func noEdits(message string) Reply {
	return Reply{Message: message, Edits: []edit.Proposal{}}
}

func parseResponse(raw string) (Reply, string) {
	if looksTruncated(raw) {
		return noEdits(raw + TruncatedWarning), OutcomeTruncated
	}

	prose := strings.TrimSpace(strings.Replace(raw, anyObjectPattern.FindString(raw), "", 1))
	if utf8.RuneCountInString(prose) > MaxProseLength {
		return noEdits(VerboseMessage), OutcomeVerbose
	}

	if match := editsObjectPattern.FindString(raw); match != "" {
		if !balanced(match) {
			return noEdits(raw + UnbalancedWarning), OutcomeUnbalanced
		}
		var env editsEnvelope
		if err := json.Unmarshal([]byte(match), &env); err == nil {
			return Reply{Message: strings.TrimSpace(strings.Replace(raw, match, "", 1)), Edits: orEmpty(env.Edits)}, OutcomeOK
		}
	}

	if frag := editsFragmentPattern.FindString(raw); frag != "" {
		var env editsEnvelope
		if err := json.Unmarshal([]byte("{"+frag+"}"), &env); err == nil {
			return Reply{Message: strings.TrimSpace(strings.Replace(raw, frag, "", 1)), Edits: orEmpty(env.Edits)}, OutcomeFallback
		}
	}

	return noEdits(raw), OutcomeNone
}

func looksTruncated(raw string) bool {
	if strings.HasSuffix(raw, "{") || strings.HasSuffix(raw, ",") || strings.HasSuffix(raw, "[") {
		return true
	}
	if !strings.HasSuffix(strings.TrimSpace(raw), "}") {
		return true
	}
	for _, m := range truncationMarkers {
		if strings.Contains(raw, m) {
			return true
		}
	}
	return false
}

// balanced counts braces and brackets; string contents are not excluded.
func balanced(s string) bool {
	return strings.Count(s, "{") == strings.Count(s, "}") &&
		strings.Count(s, "[") == strings.Count(s, "]")
}

func orEmpty(edits []edit.Proposal) []edit.Proposal {
	if edits == nil {
		return []edit.Proposal{}
	}
	return edits
}

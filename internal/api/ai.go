package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/ai"
)

// ErrInvalidReply is returned when an AI endpoint answers with a body that
// is not a {message, edits} object.
var ErrInvalidReply = errors.New("invalid ai reply")

const replySchemaJSON = `{
  "type": "object",
  "required": ["message", "edits"],
  "properties": {
    "message": { "type": "string" },
    "edits": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["action"],
        "properties": {
          "section":   { "type": "string" },
          "sectionId": { "type": "string" },
          "action":    { "type": "string" },
          "find":      { "type": ["string", "null"] },
          "replace":   { "type": ["string", "null"] },
          "addition":  { "type": ["string", "null"] },
          "reason":    { "type": ["string", "null"] }
        }
      }
    }
  }
}`

var replySchema = func() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(replySchemaJSON))
	if err != nil {
		panic(err)
	}
	return s
}()

// validateReply checks raw against the reply schema before decoding.
func validateReply(raw []byte) (ai.Reply, error) {
	res, err := replySchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return ai.Reply{}, fmt.Errorf("%w: %v", ErrInvalidReply, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return ai.Reply{}, fmt.Errorf("%w: %s", ErrInvalidReply, strings.Join(msgs, "; "))
	}
	var reply ai.Reply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return ai.Reply{}, fmt.Errorf("%w: %v", ErrInvalidReply, err)
	}
	return reply, nil
}

func (c *Client) AIStatus(ctx context.Context) (ai.Status, error) {
	var out ai.Status
	err := c.do(ctx, http.MethodGet, "/api/ai/status", nil, &out)
	return out, err
}

func (c *Client) postReply(ctx context.Context, path string, in interface{}) (ai.Reply, error) {
	raw, err := c.doRaw(ctx, http.MethodPost, path, in)
	if err != nil {
		return ai.Reply{}, err
	}
	return validateReply(raw)
}

func (c *Client) Chat(ctx context.Context, req ai.ChatRequest) (ai.Reply, error) {
	return c.postReply(ctx, "/api/ai/chat", req)
}

func (c *Client) AnalyzeSection(ctx context.Context, req ai.SectionRequest) (ai.Reply, error) {
	return c.postReply(ctx, "/api/ai/section", req)
}

func (c *Client) ATS(ctx context.Context, req ai.ATSRequest) (ai.Reply, error) {
	return c.postReply(ctx, "/api/ai/ats", req)
}

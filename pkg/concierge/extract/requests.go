package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/cognicore/concierge/pkg/concierge/order"
)

// maxJSONProbes bounds how many '{' / '[' offsets are tried when looking
// for an embedded request block.
const maxJSONProbes = 8

const requestSchemaJSON = `{
  "definitions": {
    "request": {
      "type": "object",
      "properties": {
        "type": {"type": "string"},
        "text": {"type": "string"},
        "details": {
          "type": "object",
          "additionalProperties": {"type": ["string", "number", "boolean", "null"]}
        }
      },
      "required": ["type", "text"]
    },
    "list": {"type": "array", "items": {"$ref": "#/definitions/request"}}
  },
  "oneOf": [
    {"$ref": "#/definitions/list"},
    {
      "type": "object",
      "properties": {"requests": {"$ref": "#/definitions/list"}},
      "required": ["requests"]
    }
  ]
}`

// requestSchema describes an embedded request block. Blocks that do not
// conform are ignored as a whole.
var requestSchema = mustSchema(requestSchemaJSON)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("extract: request schema: %v", err))
	}
	return s
}

type rawRequest struct {
	Type    string         `json:"type"`
	Text    string         `json:"text"`
	Details map[string]any `json:"details"`
}

// Requests builds the guest requests in a summary. A JSON block of the form
// {"requests":[{"type","text","details"}]} (or a bare array of the same
// objects) embedded in the text is used when it yields at least one valid
// request. Otherwise one request is derived per extracted item: its type is
// the first service label firing on the item, or the first label firing on
// the whole text when the item alone is unclassified, and the text-level
// room number is attached to every request. Invalid requests are dropped.
func Requests(text string) []order.Request {
	if reqs, _, _ := embeddedRequests(text); len(reqs) > 0 {
		return reqs
	}
	return derivedRequests(text)
}

// StripRequestBlock returns text without the embedded request block that
// Requests would use, so the block is not mistaken for free-text items.
// Text without such a block is returned unchanged.
func StripRequestBlock(text string) string {
	reqs, start, end := embeddedRequests(text)
	if len(reqs) == 0 {
		return text
	}
	return text[:start] + text[end:]
}

func derivedRequests(text string) []order.Request {
	room, hasRoom := RoomNumber(text)
	overall := ServiceTypes(text)[0]

	reqs := []order.Request{}
	for _, item := range Items(text) {
		label := ServiceTypes(item)[0]
		if label == LabelOther {
			label = overall
		}
		details := Details(item)
		if hasRoom {
			details[order.DetailRoomNumber] = room
		}
		req := order.Request{Type: label, Text: item, Details: details}
		if req.Valid() {
			reqs = append(reqs, req)
		}
	}
	return reqs
}

// embeddedRequests returns the first valid request block and its byte span.
func embeddedRequests(text string) (reqs []order.Request, start, end int) {
	probes := 0
	for i := 0; i < len(text) && probes < maxJSONProbes; i++ {
		if text[i] != '{' && text[i] != '[' {
			continue
		}
		probes++

		var raw json.RawMessage
		dec := json.NewDecoder(strings.NewReader(text[i:]))
		if err := dec.Decode(&raw); err != nil {
			continue
		}
		if reqs := decodeRequests(raw); len(reqs) > 0 {
			return reqs, i, i + int(dec.InputOffset())
		}
	}
	return nil, 0, 0
}

func decodeRequests(raw json.RawMessage) []order.Request {
	result, err := requestSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil || !result.Valid() {
		return nil
	}

	var list []rawRequest
	if err := json.Unmarshal(raw, &list); err != nil {
		var wrapper struct {
			Requests []rawRequest `json:"requests"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil
		}
		list = wrapper.Requests
	}

	var reqs []order.Request
	for _, r := range list {
		req := order.Request{
			Type:    strings.TrimSpace(r.Type),
			Text:    strings.TrimSpace(r.Text),
			Details: knownDetails(r.Details),
		}
		if req.Valid() {
			reqs = append(reqs, req)
		}
	}
	return reqs
}

// knownDetails keeps only recognised detail keys, stringifying values.
func knownDetails(in map[string]any) map[string]string {
	out := make(map[string]string)
	for _, key := range order.DetailKeys {
		v, ok := in[key]
		if !ok || v == nil {
			continue
		}
		var s string
		switch val := v.(type) {
		case string:
			s = val
		case float64:
			s = strings.TrimSuffix(fmt.Sprintf("%.2f", val), ".00")
		default:
			s = fmt.Sprint(val)
		}
		if s = strings.TrimSpace(s); s != "" {
			out[key] = s
		}
	}
	return out
}

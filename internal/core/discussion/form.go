package discussion

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// Mutation operations understood by the discussion detail endpoint. These are
// the values of the "operation" field in a submitted form.
const (
	OpReply           = "reply"
	OpTailReply       = "tail_reply"
	OpEditReply       = "edit_reply"
	OpDeleteReply     = "delete_reply"
	OpEditTailReply   = "edit_tail_reply"
	OpDeleteTailReply = "delete_tail_reply"
	OpUpdate          = "update"
	OpDelete          = "delete"
	OpStar            = "star"
	OpUnstar          = "unstar"
)

// FormDescriptor is the opaque mapping of mutation parameters attached to a
// trigger. It is carried serialized on the trigger, parsed once by the
// handler, and submitted verbatim.
type FormDescriptor map[string]string

// ParseFormDescriptor decodes a serialized form descriptor. A nil or empty
// payload is an error: every mutation trigger must carry one.
func ParseFormDescriptor(raw []byte) (FormDescriptor, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("parse form descriptor: empty payload")
	}
	var form FormDescriptor
	if err := json.Unmarshal(raw, &form); err != nil {
		return nil, fmt.Errorf("parse form descriptor: %w", err)
	}
	return form, nil
}

// Operation returns the mutation operation this descriptor drives.
func (f FormDescriptor) Operation() string { return f["operation"] }

// With returns a copy of the descriptor with one extra field set. The
// original is never mutated: descriptors are submitted verbatim and shared
// between a trigger and its editor.
func (f FormDescriptor) With(key, value string) FormDescriptor {
	out := make(FormDescriptor, len(f)+1)
	for k, v := range f {
		out[k] = v
	}
	out[key] = value
	return out
}

// Values encodes the descriptor for an HTTP POST body.
func (f FormDescriptor) Values() url.Values {
	v := make(url.Values, len(f))
	for key, val := range f {
		v.Set(key, val)
	}
	return v
}

// Marshal serializes the descriptor the way the thread renderer attaches it
// to triggers. Keys are emitted sorted, so output is stable.
func (f FormDescriptor) Marshal() json.RawMessage {
	raw, err := json.Marshal(f)
	if err != nil {
		// A map[string]string cannot fail to marshal.
		panic(err)
	}
	return raw
}

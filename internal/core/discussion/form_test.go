package discussion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormDescriptor(t *testing.T) {
	form, err := ParseFormDescriptor([]byte(`{"operation":"tail_reply","did":"1","drid":"42"}`))
	require.NoError(t, err)
	assert.Equal(t, OpTailReply, form.Operation())
	assert.Equal(t, "42", form["drid"])
}

func TestParseFormDescriptor_Empty(t *testing.T) {
	_, err := ParseFormDescriptor(nil)
	require.Error(t, err)

	_, err = ParseFormDescriptor([]byte{})
	require.Error(t, err)
}

func TestParseFormDescriptor_Malformed(t *testing.T) {
	_, err := ParseFormDescriptor([]byte(`{"operation": 42}`))
	require.Error(t, err)

	_, err = ParseFormDescriptor([]byte(`not json`))
	require.Error(t, err)
}

func TestFormDescriptorWith_DoesNotMutate(t *testing.T) {
	orig := FormDescriptor{"operation": OpReply, "did": "1"}

	got := orig.With("content", "hello")

	assert.Equal(t, "hello", got["content"])
	assert.NotContains(t, orig, "content")
	assert.Equal(t, OpReply, got.Operation())
}

func TestFormDescriptorValues(t *testing.T) {
	form := FormDescriptor{"operation": OpDelete, "did": "1"}
	v := form.Values()
	assert.Equal(t, OpDelete, v.Get("operation"))
	assert.Equal(t, "1", v.Get("did"))
}

func TestFormDescriptorMarshalRoundTrip(t *testing.T) {
	form := FormDescriptor{"operation": OpEditReply, "did": "1", "drid": "42"}

	parsed, err := ParseFormDescriptor(form.Marshal())
	require.NoError(t, err)
	assert.Equal(t, form, parsed)
}

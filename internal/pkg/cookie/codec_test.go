package cookie

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueDecodeRoundTrip(t *testing.T) {
	codec := NewCodec("voiceai_session", "test-secret", false, time.Hour)

	ck, err := codec.Issue("01ARZ3NDEKTSV4RRFFQ69G5FAV")
	require.NoError(t, err)
	assert.Equal(t, "voiceai_session", ck.Name)
	assert.True(t, ck.HttpOnly)

	sid, err := codec.Decode(ck.Value)
	require.NoError(t, err)
	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", sid)
}

func TestDecodeRejectsTampering(t *testing.T) {
	codec := NewCodec("voiceai_session", "test-secret", false, time.Hour)

	ck, err := codec.Issue("sid-1")
	require.NoError(t, err)

	_, err = codec.Decode(ck.Value + "x")
	assert.Error(t, err)
}

func TestDecodeRejectsForeignSecret(t *testing.T) {
	codec := NewCodec("voiceai_session", "secret-a", false, time.Hour)
	other := NewCodec("voiceai_session", "secret-b", false, time.Hour)

	ck, err := other.Issue("sid-1")
	require.NoError(t, err)

	_, err = codec.Decode(ck.Value)
	assert.Error(t, err)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	codec := NewCodec("voiceai_session", "test-secret", false, time.Hour)

	_, err := codec.Decode("not-a-token")
	assert.Error(t, err)
}

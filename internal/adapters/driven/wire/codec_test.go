package wire

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeBody_RoundTrip(t *testing.T) {
	body, err := encodeBody(map[int]any{
		1: "credential-token",
		5: "demo.example.com",
		6: []byte{0xde, 0xad},
	})
	require.NoError(t, err)

	fields, err := decodeBody(bytes.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, "credential-token", fields.stringField(1))
	assert.Equal(t, "demo.example.com", fields.stringField(5))
	assert.Equal(t, []byte{0xde, 0xad}, fields.bytesField(6))
}

func TestDecodeBody_NotGzip(t *testing.T) {
	_, err := decodeBody(bytes.NewReader([]byte("plain text")))
	require.Error(t, err)
}

func TestDecodeBody_NotCBOR(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("not cbor at all"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = decodeBody(&buf)
	require.Error(t, err)
}

func TestFieldMap_AbsentAndMistypedFields(t *testing.T) {
	body, err := encodeBody(map[int]any{
		1: true,
		2: []string{"first", "second"},
		3: "a string where a bool might be expected",
	})
	require.NoError(t, err)
	fields, err := decodeBody(bytes.NewReader(body))
	require.NoError(t, err)

	assert.True(t, fields.boolField(1))
	assert.Equal(t, []string{"first", "second"}, fields.stringsField(2))

	// Absent keys yield zero values.
	assert.False(t, fields.boolField(9))
	assert.Empty(t, fields.stringField(9))
	assert.Nil(t, fields.bytesField(9))
	assert.Nil(t, fields.stringsField(9))
	assert.Nil(t, fields.listField(9))

	// Mistyped keys yield zero values rather than errors.
	assert.False(t, fields.boolField(3))
	assert.Nil(t, fields.stringsField(3))
}

func TestFieldMap_NestedList(t *testing.T) {
	body, err := encodeBody(map[int]any{
		5: []map[int]any{
			{1: "team-1", 2: "Acme"},
			{1: "team-2", 2: "Beta"},
		},
	})
	require.NoError(t, err)
	fields, err := decodeBody(bytes.NewReader(body))
	require.NoError(t, err)

	entries := fields.listField(5)
	require.Len(t, entries, 2)
	assert.Equal(t, "team-1", entries[0].stringField(1))
	assert.Equal(t, "Beta", entries[1].stringField(2))
}

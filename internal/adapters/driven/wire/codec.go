package wire

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// contentType is the media type of every protocol request and response
// body: an integer-keyed CBOR map, gzip-compressed.
const contentType = "application/cbor+gzip"

// Request field keys. Field 1 is always the credential; field 2 carries
// the team scope only when one is set.
const (
	reqCredential = 1
	reqTeam       = 2
	reqDomain     = 5
	reqBundle     = 6
	reqBlobs      = 7
)

// Response field keys. Fields 1-4 form the standard envelope; 5 and up
// are endpoint-specific.
const (
	respSuccess  = 1
	respErrors   = 2
	respWarnings = 3
	respMessages = 4
	respPresent  = 5
	respBundleID = 5
	respTeams    = 5
	respMissing  = 6
	respManage   = 6
)

// Team entry field keys within the teams response list.
const (
	teamID   = 1
	teamName = 2
)

// encMode is the CBOR encoding mode for request bodies.
var encMode = func() cbor.EncMode {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return mode
}()

// encodeBody serializes an integer-keyed field map and compresses it.
func encodeBody(fields map[int]any) ([]byte, error) {
	payload, err := encMode.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(payload); err != nil {
		return nil, fmt.Errorf("compress request: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress request: %w", err)
	}
	return buf.Bytes(), nil
}

// fieldMap is a decoded response body. Values stay in raw CBOR form until
// a typed accessor extracts them.
type fieldMap map[int]cbor.RawMessage

// decodeBody decompresses and parses a response body.
func decodeBody(r io.Reader) (fieldMap, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("decompress response: %w", err)
	}
	defer zr.Close()

	payload, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompress response: %w", err)
	}

	var fields fieldMap
	if err := cbor.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return fields, nil
}

// boolField returns a boolean field, false when absent or mistyped.
func (m fieldMap) boolField(key int) bool {
	raw, ok := m[key]
	if !ok {
		return false
	}
	var v bool
	if err := cbor.Unmarshal(raw, &v); err != nil {
		return false
	}
	return v
}

// stringField returns a string field, empty when absent or mistyped.
func (m fieldMap) stringField(key int) string {
	raw, ok := m[key]
	if !ok {
		return ""
	}
	var v string
	if err := cbor.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return v
}

// bytesField returns a byte-string field, nil when absent or mistyped.
func (m fieldMap) bytesField(key int) []byte {
	raw, ok := m[key]
	if !ok {
		return nil
	}
	var v []byte
	if err := cbor.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

// stringsField returns a string-list field, nil when absent or mistyped.
func (m fieldMap) stringsField(key int) []string {
	raw, ok := m[key]
	if !ok {
		return nil
	}
	var v []string
	if err := cbor.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

// listField returns a list of nested integer-keyed maps.
func (m fieldMap) listField(key int) []fieldMap {
	raw, ok := m[key]
	if !ok {
		return nil
	}
	var v []fieldMap
	if err := cbor.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

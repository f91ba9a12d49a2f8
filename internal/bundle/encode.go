package bundle

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
)

// detMode is the deterministic CBOR encoding mode. Identical trees must
// serialize to identical bytes so the bundle identifier is stable.
var detMode = func() cbor.EncMode {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return mode
}()

// Encode serializes a bundle tree to its canonical wire form: nested maps
// of entry name to child, with file entries holding their 32-byte content
// hash. Raw file bytes never appear in the serialized tree.
func Encode(root *domain.Node) ([]byte, error) {
	encoded, err := detMode.Marshal(toWire(root))
	if err != nil {
		return nil, fmt.Errorf("encode bundle: %w", err)
	}
	return encoded, nil
}

// Identifier computes the bundle identifier: the content hash of the
// serialized tree.
func Identifier(encoded []byte) []byte {
	return HashContent(encoded)
}

// toWire converts a node into the value serialized on the wire.
func toWire(n *domain.Node) any {
	if !n.IsDir() {
		return n.Hash
	}
	children := make(map[string]any, len(n.Children))
	for name, child := range n.Children {
		children[name] = toWire(child)
	}
	return children
}

package domain

import "encoding/hex"

// HashSize is the length in bytes of a content hash (SHA-256).
const HashSize = 32

// Node is one entry in a bundle tree. A node is either a file, carrying
// the content hash of its bytes, or a directory, carrying named children.
// The tree never embeds raw file bytes - content travels separately and
// only when the server reports it missing.
type Node struct {
	// Hash is the content hash for file nodes. Nil for directories.
	Hash []byte

	// Children maps entry names to child nodes. Nil for files.
	Children map[string]*Node
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n.Children != nil
}

// FileCount returns the number of file nodes in the subtree rooted at n.
func (n *Node) FileCount() int {
	if !n.IsDir() {
		return 1
	}
	count := 0
	for _, child := range n.Children {
		count += child.FileCount()
	}
	return count
}

// ContentTable maps hex-encoded content hashes to raw file bytes.
// It is populated once per publish attempt while building the bundle and
// consulted only to satisfy missing-part requests from the server.
type ContentTable map[string][]byte

// Put stores content under its hash. Identical content referenced at
// multiple paths is stored once.
func (t ContentTable) Put(hash []byte, content []byte) {
	key := hex.EncodeToString(hash)
	if _, ok := t[key]; ok {
		return
	}
	t[key] = content
}

// Get returns the bytes for a hex-encoded hash.
func (t ContentTable) Get(hexHash string) ([]byte, bool) {
	content, ok := t[hexHash]
	return content, ok
}

// TotalSize returns the combined size in bytes of all stored content.
func (t ContentTable) TotalSize() int64 {
	var total int64
	for _, content := range t {
		total += int64(len(content))
	}
	return total
}

// Bundle is the hashed tree representation of a directory prepared for
// publication, together with the content needed to satisfy upload requests.
type Bundle struct {
	// Root is the top-level directory node.
	Root *Node

	// Table holds the raw bytes for every distinct content hash in the tree.
	Table ContentTable
}

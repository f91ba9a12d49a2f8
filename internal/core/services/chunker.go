package services

import (
	"fmt"
	"sort"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
)

// DefaultChunkBudget is the size budget for one missing-parts upload.
const DefaultChunkBudget = 10 << 20 // 10 MiB

// blob is one missing content item resolved from the content table.
type blob struct {
	hash    string
	content []byte
}

// planChunks partitions the server-reported missing content into
// size-bounded batches. Blobs are ordered largest-first before the greedy
// fill; placing large items first reduces chunk-count fragmentation.
// A chunk may exceed the budget only by holding exactly one oversized
// blob, since blobs are never split.
//
// A missing hash with no entry in the content table is a bundling bug and
// fails loudly rather than silently skipping content.
func planChunks(missing []string, table domain.ContentTable, budget int) ([][]blob, error) {
	blobs := make([]blob, 0, len(missing))
	for _, hash := range missing {
		content, ok := table.Get(hash)
		if !ok {
			return nil, fmt.Errorf("%w: server requested %s", domain.ErrMissingContent, hash)
		}
		blobs = append(blobs, blob{hash: hash, content: content})
	}

	sort.SliceStable(blobs, func(i, j int) bool {
		if len(blobs[i].content) != len(blobs[j].content) {
			return len(blobs[i].content) > len(blobs[j].content)
		}
		return blobs[i].hash < blobs[j].hash
	})

	var chunks [][]blob
	var current []blob
	size := 0
	for _, b := range blobs {
		if len(current) > 0 && size+len(b.content) > budget {
			chunks = append(chunks, current)
			current = nil
			size = 0
		}
		current = append(current, b)
		size += len(b.content)
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks, nil
}

// chunkBytes extracts the raw blob payloads of one chunk in order.
func chunkBytes(chunk []blob) [][]byte {
	out := make([][]byte, len(chunk))
	for i, b := range chunk {
		out[i] = b.content
	}
	return out
}

// chunkSize returns the combined payload size of one chunk.
func chunkSize(chunk []blob) int {
	total := 0
	for _, b := range chunk {
		total += len(b.content)
	}
	return total
}

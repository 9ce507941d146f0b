package chain

import "fmt"

// Set of reasons a chain can fail verification.
const (
	ReasonLinkage = "invalid previous hash reference"
	ReasonHash    = "invalid hash"
)

// Result describes the outcome of checking a sequence of blocks. Index and
// BlockID identify the first block that failed and are only meaningful
// when Valid is false.
type Result struct {
	Valid   bool   `json:"valid"`
	Index   int    `json:"index"`
	BlockID uint64 `json:"block_id,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// String implements the fmt.Stringer interface.
func (r Result) String() string {
	if r.Valid {
		return "chain is valid"
	}

	return fmt.Sprintf("Block %d has %s", r.BlockID, r.Reason)
}

// Check walks the blocks in order and stops at the first block that is not
// linked to its predecessor or whose hash does not match its contents. An
// empty sequence is valid.
func Check(blocks []Block) Result {
	for i, b := range blocks {
		if i > 0 && b.PrevHash != blocks[i-1].Hash {
			return Result{Index: i, BlockID: b.ID, Reason: ReasonLinkage}
		}

		if !b.HasValidHash() {
			return Result{Index: i, BlockID: b.ID, Reason: ReasonHash}
		}
	}

	return Result{Valid: true, Index: -1}
}

// Verify reports whether the blocks form a valid chain.
func Verify(blocks []Block) bool {
	return Check(blocks).Valid
}

// =============================================================================

// Tamper returns a copy of the block carrying newData while keeping the
// original nonce and hash, so the copy no longer verifies.
func Tamper(b Block, newData string) Block {
	b.Data = newData
	return b
}

// Replace returns a new slice with the block at index swapped for b. The
// input slice is not modified.
func Replace(blocks []Block, index int, b Block) ([]Block, error) {
	if index < 0 || index >= len(blocks) {
		return nil, fmt.Errorf("%w: index[%d]", ErrNotFound, index)
	}

	out := make([]Block, len(blocks))
	copy(out, blocks)
	out[index] = b

	return out, nil
}

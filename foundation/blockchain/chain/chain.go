// Package chain implements the hash linked block sequence that backs the
// ledger. It provides the block hash, the proof of work used to build new
// blocks, an append-only in memory store, and whole chain verification.
package chain

import (
	"fmt"
	"sync"
)

// EventHandler defines a function that is called when events
// occur in the processing of blocks.
type EventHandler func(v string, args ...any)

// =============================================================================

// Chain is an append-only sequence of blocks held in memory. It always
// contains the genesis block at index 0.
type Chain struct {
	mu        sync.RWMutex
	blocks    []Block
	evHandler EventHandler
}

// New constructs a chain seeded with the genesis block.
func New(evHandler EventHandler) *Chain {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	genesis := Genesis()
	ev("chain: New: genesis: blk[%s]", genesis)

	return &Chain{
		blocks:    []Block{genesis},
		evHandler: ev,
	}
}

// Append adds the block to the end of the chain. The block must be the next
// number, reference the current head's hash, and carry a valid hash.
func (c *Chain) Append(block Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	head := c.blocks[len(c.blocks)-1]

	c.evHandler("chain: Append: validate: blk[%d]: check: block number is the next number", block.ID)
	c.evHandler("chain: Append: validate: blk[%d]: check: parent hash does match parent block", block.ID)

	if block.ID != head.ID+1 || block.PrevHash != head.Hash {
		return &LinkageError{
			HeadID:        head.ID,
			HeadHash:      head.Hash,
			BlockID:       block.ID,
			BlockPrevHash: block.PrevHash,
		}
	}

	c.evHandler("chain: Append: validate: blk[%d]: check: block hash matches contents", block.ID)

	if !block.HasValidHash() {
		return fmt.Errorf("%w: blk[%d] hash[%s]", ErrInvalidHash, block.ID, block.Hash)
	}

	c.blocks = append(c.blocks, block)
	c.evHandler("chain: Append: added: blk[%s]", block)

	return nil
}

// Latest returns the head of the chain.
func (c *Chain) Latest() Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.blocks[len(c.blocks)-1]
}

// All returns a copy of every block in order.
func (c *Chain) All() []Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	blocks := make([]Block, len(c.blocks))
	copy(blocks, c.blocks)

	return blocks
}

// Len returns the number of blocks including genesis.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.blocks)
}

// Block returns the block with the specified id.
func (c *Chain) Block(id uint64) (Block, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// Ids are contiguous from genesis so the id maps to a position.
	if id < GenesisID || id-GenesisID >= uint64(len(c.blocks)) {
		return Block{}, fmt.Errorf("%w: id[%d]", ErrNotFound, id)
	}

	return c.blocks[id-GenesisID], nil
}

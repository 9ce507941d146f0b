package chain

import (
	"errors"
	"fmt"
)

// Set of error variables for chain operations.
var (
	ErrChainLinkage      = errors.New("block does not link to the head of the chain")
	ErrInvalidHash       = errors.New("block hash does not match its contents")
	ErrInvalidDifficulty = errors.New("difficulty out of range")
	ErrMiningTimeout     = errors.New("mining gave up before finding a solution")
	ErrMiningAborted     = errors.New("mining aborted")
	ErrNotFound          = errors.New("block not found")
)

// LinkageError is returned when a block is appended that does not follow
// the current head of the chain.
type LinkageError struct {
	HeadID        uint64
	HeadHash      string
	BlockID       uint64
	BlockPrevHash string
}

// Error implements the error interface.
func (le *LinkageError) Error() string {
	if le.BlockID != le.HeadID+1 {
		return fmt.Sprintf("this block is not the next number, got %d, exp %d", le.BlockID, le.HeadID+1)
	}

	return fmt.Sprintf("parent block hash doesn't match our known parent, got %s, exp %s", le.BlockPrevHash, le.HeadHash)
}

// Is allows errors.Is to match a LinkageError against ErrChainLinkage.
func (le *LinkageError) Is(target error) bool {
	return target == ErrChainLinkage
}

package chain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultDifficulty is the number of leading zeros a mined hash needs when
// the caller has no opinion.
const DefaultDifficulty = 2

// maxDifficulty is the length of a hex encoded sha256 digest.
const maxDifficulty = sha256.Size * 2

// TimeFormat is the layout used for every block timestamp.
const TimeFormat = "2006-01-02T15:04:05.000Z"

// Genesis values. The genesis hash is always computed from these.
const (
	GenesisID        uint64 = 1
	GenesisTimestamp        = "2025-02-27T10:00:00.000Z"
	GenesisPrevHash         = "0"
	GenesisData             = "Genesis Block"
)

// =============================================================================

// Block represents one record in the hash linked chain.
type Block struct {
	ID        uint64 `json:"id"`            // Sequence number, genesis is 1.
	Timestamp string `json:"timestamp"`     // Creation time in TimeFormat.
	PrevHash  string `json:"previous_hash"` // Hash of the preceding block, "0" for genesis.
	Data      string `json:"data"`          // Transaction description.
	Nonce     uint64 `json:"nonce"`         // Value identified to solve the hash solution.
	Hash      string `json:"hash"`          // Hash over the fields above.
}

// Genesis constructs the fixed first block of every chain.
func Genesis() Block {
	b := Block{
		ID:        GenesisID,
		Timestamp: GenesisTimestamp,
		PrevHash:  GenesisPrevHash,
		Data:      GenesisData,
		Nonce:     0,
	}
	b.Hash = b.ComputeHash()

	return b
}

// Timestamp formats the specified time the way blocks store it.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// Hash returns the lowercase hex sha256 digest of the block fields joined
// in order with no separator.
func Hash(id uint64, timestamp string, prevHash string, data string, nonce uint64) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(id, 10))
	sb.WriteString(timestamp)
	sb.WriteString(prevHash)
	sb.WriteString(data)
	sb.WriteString(strconv.FormatUint(nonce, 10))

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

// ComputeHash recalculates the hash from the block's current fields.
func (b Block) ComputeHash() string {
	return Hash(b.ID, b.Timestamp, b.PrevHash, b.Data, b.Nonce)
}

// HasValidHash reports whether the stored hash matches the block's fields.
func (b Block) HasValidHash() bool {
	return b.ComputeHash() == b.Hash
}

// String implements the fmt.Stringer interface for logging.
func (b Block) String() string {
	return fmt.Sprintf("%d:%s", b.ID, b.Hash)
}

// =============================================================================

// MineArgs represents the set of arguments required to mine a block.
type MineArgs struct {
	ID          uint64
	Timestamp   string
	PrevHash    string
	Data        string
	Difficulty  int
	MaxAttempts uint64 // Zero means no cap.
	EvHandler   EventHandler
}

// Mine constructs a new block and performs the work to find a nonce that
// produces a hash with the requested number of leading zeros.
func Mine(ctx context.Context, args MineArgs) (Block, error) {
	if args.Difficulty < 0 || args.Difficulty > maxDifficulty {
		return Block{}, fmt.Errorf("%w: %d", ErrInvalidDifficulty, args.Difficulty)
	}

	ev := args.EvHandler
	if ev == nil {
		ev = func(string, ...any) {}
	}

	nb := Block{
		ID:        args.ID,
		Timestamp: args.Timestamp,
		PrevHash:  args.PrevHash,
		Data:      args.Data,
		Nonce:     0, // Will be identified by the POW loop.
	}

	if err := nb.performPOW(ctx, args.Difficulty, args.MaxAttempts, ev); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// performPOW does the work of mining to find a valid hash for the block.
// Pointer semantics are being used since a nonce is being discovered.
func (b *Block) performPOW(ctx context.Context, difficulty int, maxAttempts uint64, ev EventHandler) error {
	ev("chain: performPOW: MINING: started: blk[%d]", b.ID)
	defer ev("chain: performPOW: MINING: completed: blk[%d]", b.ID)

	var attempts uint64
	for {
		if ctx.Err() != nil {
			ev("chain: performPOW: MINING: CANCELLED: attempts[%d]", attempts)
			return fmt.Errorf("%w: %w", ErrMiningAborted, ctx.Err())
		}

		if maxAttempts > 0 && attempts >= maxAttempts {
			ev("chain: performPOW: MINING: GAVE UP: attempts[%d]", attempts)
			return fmt.Errorf("%w: after %d attempts", ErrMiningTimeout, attempts)
		}

		attempts++
		if attempts%1_000_000 == 0 {
			ev("chain: performPOW: MINING: attempts[%d]", attempts)
		}

		b.Nonce++
		hash := b.ComputeHash()
		if !IsHashSolved(difficulty, hash) {
			continue
		}

		b.Hash = hash

		ev("chain: performPOW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]: attempts[%d]", b.PrevHash, hash, attempts)
		return nil
	}
}

// IsHashSolved checks the hash starts with difficulty number of 0's.
func IsHashSolved(difficulty int, hash string) bool {
	if difficulty < 0 || difficulty > len(hash) {
		return false
	}

	return strings.Count(hash[:difficulty], "0") == difficulty
}

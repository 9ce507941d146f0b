// Package ledger is the application API for the hospital ledger. It owns the
// block chain, the transaction history and the activity log, and it is the
// single place where new blocks are mined and appended.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ormond/healthchain/business/core/record"
	"github.com/ormond/healthchain/foundation/blockchain/chain"
)

// Set of error variables for ledger operations.
var (
	ErrBlockNotFound  = errors.New("block not found")
	ErrTamperNoChange = errors.New("tamper data matches the block data")
)

// EventHandler defines a function that is called when events
// occur in the processing of the ledger.
type EventHandler func(v string, args ...any)

// =============================================================================

// Config represents the configuration required to construct a ledger.
type Config struct {
	Records     *record.Core
	Difficulty  int
	MaxAttempts uint64
	MineTimeout time.Duration
	EvHandler   EventHandler
	Now         func() time.Time
}

// Receipt is what the caller gets back after submitting a record.
type Receipt struct {
	Record      record.Record `json:"record"`
	Transaction Transaction   `json:"transaction"`
	Block       chain.Block   `json:"block"`
}

// TamperResult shows what verification reports for a chain where one
// block's data was changed. The ledger itself is never modified.
type TamperResult struct {
	Original chain.Block  `json:"original"`
	Tampered chain.Block  `json:"tampered"`
	Result   chain.Result `json:"result"`
}

// Stats summarizes the ledger for the dashboard.
type Stats struct {
	Records      record.Counts `json:"records"`
	Blocks       int           `json:"blocks"`
	Transactions int           `json:"transactions"`
	LatestHash   string        `json:"latest_hash"`
}

// Ledger manages the chain and the supporting history.
type Ledger struct {
	records     *record.Core
	difficulty  int
	maxAttempts uint64
	mineTimeout time.Duration
	evHandler   EventHandler
	now         func() time.Time

	// commitMu serializes read head, mine and append so two commits can't
	// mine against the same previous hash.
	commitMu sync.Mutex

	chain    *chain.Chain
	history  history
	activity activity
}

// New constructs a ledger with a chain containing only the genesis block.
func New(cfg Config) (*Ledger, error) {
	if cfg.Records == nil {
		return nil, errors.New("ledger requires a record core")
	}

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	l := Ledger{
		records:     cfg.Records,
		difficulty:  cfg.Difficulty,
		maxAttempts: cfg.MaxAttempts,
		mineTimeout: cfg.MineTimeout,
		evHandler:   ev,
		now:         now,
		chain:       chain.New(chain.EventHandler(ev)),
	}

	l.Logf(LevelInfo, "Blockchain initialized")

	return &l, nil
}

// Submit stores the record and commits a transaction describing it.
func (l *Ledger) Submit(ctx context.Context, ne record.NewEntry) (Receipt, error) {
	rec, err := l.records.Create(ctx, ne, l.now())
	if err != nil {
		return Receipt{}, err
	}

	tx, block, err := l.Commit(ctx, string(rec.Type), rec.Describe())
	if err != nil {

		// The record store has no undo. The record stays and the failure
		// is visible in the activity log.
		l.Logf(LevelWarn, "Record %s %s saved but not added to the blockchain: %s", rec.Type, rec.ID, err)
		return Receipt{}, err
	}

	l.Logf(LevelInfo, "New %s record added", rec.Type)

	return Receipt{Record: rec, Transaction: tx, Block: block}, nil
}

// Commit mines a block carrying data on top of the current head, appends it
// and records the transaction.
func (l *Ledger) Commit(ctx context.Context, txType string, data string) (Transaction, chain.Block, error) {
	l.commitMu.Lock()
	defer l.commitMu.Unlock()

	if l.mineTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.mineTimeout)
		defer cancel()
	}

	head := l.chain.Latest()
	timestamp := chain.Timestamp(l.now())

	l.evHandler("ledger: Commit: MINING: blk[%d]: prevBlk[%s]", head.ID+1, head.Hash)

	block, err := chain.Mine(ctx, chain.MineArgs{
		ID:          head.ID + 1,
		Timestamp:   timestamp,
		PrevHash:    head.Hash,
		Data:        data,
		Difficulty:  l.difficulty,
		MaxAttempts: l.maxAttempts,
		EvHandler:   chain.EventHandler(l.evHandler),
	})
	if err != nil {
		return Transaction{}, chain.Block{}, fmt.Errorf("mine: %w", err)
	}

	if err := l.chain.Append(block); err != nil {
		return Transaction{}, chain.Block{}, fmt.Errorf("append: %w", err)
	}

	tx := Transaction{
		ID:        l.history.nextID(),
		Timestamp: timestamp,
		Type:      txType,
		Data:      data,
		BlockID:   block.ID,
	}
	l.history.add(tx)

	l.Logf(LevelInfo, "New block added: %s", data)
	l.blockEvent(block)

	return tx, block, nil
}

// Verify checks the whole chain and logs the outcome.
func (l *Ledger) Verify() chain.Result {
	res := chain.Check(l.chain.All())

	if !res.Valid {
		l.Logf(LevelWarn, "Blockchain verification failed: %s", res)
		return res
	}

	l.Logf(LevelInfo, "Blockchain verification completed successfully")

	return res
}

// SimulateTamper changes the data of the specified block in a detached copy
// of the chain and verifies that copy. The new data must differ from the
// block's data so the copy always fails verification.
func (l *Ledger) SimulateTamper(id uint64, newData string) (TamperResult, error) {
	blocks := l.chain.All()

	// Ids are contiguous from genesis so the id maps to a position.
	if id < chain.GenesisID || id-chain.GenesisID >= uint64(len(blocks)) {
		return TamperResult{}, fmt.Errorf("%w: id[%d]", ErrBlockNotFound, id)
	}
	index := int(id - chain.GenesisID)

	original := blocks[index]
	if newData == original.Data {
		return TamperResult{}, fmt.Errorf("%w: id[%d]", ErrTamperNoChange, id)
	}

	tampered := chain.Tamper(original, newData)

	detached, err := chain.Replace(blocks, index, tampered)
	if err != nil {
		return TamperResult{}, err
	}

	res := chain.Check(detached)
	l.Logf(LevelWarn, "Tamper simulation on block %d: %s", id, res)

	tr := TamperResult{
		Original: original,
		Tampered: tampered,
		Result:   res,
	}

	return tr, nil
}

// Blocks returns a copy of the chain.
func (l *Ledger) Blocks() []chain.Block {
	return l.chain.All()
}

// Block returns the block with the specified id.
func (l *Ledger) Block(id uint64) (chain.Block, error) {
	b, err := l.chain.Block(id)
	if err != nil {
		return chain.Block{}, fmt.Errorf("%w: id[%d]", ErrBlockNotFound, id)
	}

	return b, nil
}

// Transactions returns the transaction history in commit order.
func (l *Ledger) Transactions() []Transaction {
	return l.history.copy()
}

// Logs returns the activity log lines in order.
func (l *Ledger) Logs() []string {
	return l.activity.copy()
}

// Stats returns the dashboard summary.
func (l *Ledger) Stats(ctx context.Context) (Stats, error) {
	cnt, err := l.records.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count: %w", err)
	}

	s := Stats{
		Records:      cnt,
		Blocks:       l.chain.Len(),
		Transactions: l.history.count(),
		LatestHash:   l.chain.Latest().Hash,
	}

	return s, nil
}

// Logf adds a line to the activity log and sends it as an event.
func (l *Ledger) Logf(level string, format string, args ...any) {
	line := l.activity.add(l.now(), level, fmt.Sprintf(format, args...))
	l.evHandler("viewer: log: %s", line)
}

// =============================================================================

// blockEvent provides a specific event about a new block in the chain for
// the dashboard.
func (l *Ledger) blockEvent(block chain.Block) {
	blockJSON, err := json.Marshal(block)
	if err != nil {
		blockJSON = []byte(fmt.Sprintf("%q", err.Error()))
	}

	l.evHandler(`viewer: block: %s`, string(blockJSON))
}

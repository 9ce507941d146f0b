package ledger

import (
	"fmt"
	"sync"
)

// Transaction describes one record change that was written into a block.
type Transaction struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Data      string `json:"data"`
	BlockID   uint64 `json:"block_id"`
}

// history holds the transactions in the order they were committed.
type history struct {
	mu    sync.RWMutex
	trans []Transaction
}

// nextID returns the id the next transaction will receive.
func (h *history) nextID() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return fmt.Sprintf("T%03d", len(h.trans)+1)
}

// add appends the transaction.
func (h *history) add(tx Transaction) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.trans = append(h.trans, tx)
}

// copy returns every transaction in order.
func (h *history) copy() []Transaction {
	h.mu.RLock()
	defer h.mu.RUnlock()

	trans := make([]Transaction, len(h.trans))
	copy(trans, h.trans)

	return trans
}

// count returns the number of transactions.
func (h *history) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.trans)
}

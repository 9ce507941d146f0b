// Package recordgrp maintains the group of handlers for hospital records and
// the history kept alongside them.
package recordgrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ormond/healthchain/business/core/ledger"
	"github.com/ormond/healthchain/business/core/record"
	"github.com/ormond/healthchain/business/sys/metrics"
	"github.com/ormond/healthchain/business/web/errs"
	"github.com/ormond/healthchain/foundation/blockchain/chain"
	"github.com/ormond/healthchain/foundation/validate"
	"github.com/ormond/healthchain/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of record endpoints.
type Handlers struct {
	Log    *zap.SugaredLogger
	Ledger *ledger.Ledger
	Record *record.Core
}

// Create stores a new record and commits its transaction to the chain.
func (h Handlers) Create(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var ne record.NewEntry
	if err := web.Decode(r, &ne); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("create record", "traceid", v.TraceID, "type", ne.EntityType, "id", ne.ID)

	rcpt, err := h.Ledger.Submit(ctx, ne)
	if err != nil {
		switch {
		case validate.IsFieldErrors(err):
			return err
		case errors.Is(err, record.ErrDuplicate):
			return errs.NewTrusted(err, http.StatusBadRequest)
		}

		// Store and mining details stay in the service logs.
		h.Log.Errorw("create record", "traceid", v.TraceID, "type", ne.EntityType, "id", ne.ID, "ERROR", err)

		msg := fmt.Sprintf("unable to save %s record %s", ne.EntityType, ne.ID)
		for _, mineErr := range []error{chain.ErrMiningTimeout, chain.ErrMiningAborted} {
			if errors.Is(err, mineErr) {
				msg = fmt.Sprintf("%s record %s saved but not added to the blockchain: %s", ne.EntityType, ne.ID, mineErr)
			}
		}
		return errs.NewTrusted(errors.New(msg), http.StatusInternalServerError)
	}

	// Block ids start at one and have no gaps.
	metrics.SetBlocks(int(rcpt.Block.ID))

	resp := struct {
		Success     bool               `json:"success"`
		Message     string             `json:"message"`
		Transaction ledger.Transaction `json:"transaction"`
		Block       chain.Block        `json:"block"`
	}{
		Success:     true,
		Message:     fmt.Sprintf("Saved %s record", rcpt.Record.Type),
		Transaction: rcpt.Transaction,
		Block:       rcpt.Block,
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Query returns every stored record grouped by entity type.
func (h Handlers) Query(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	rs, err := h.Record.QueryAll(ctx)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	return web.Respond(ctx, w, rs, http.StatusOK)
}

// Dashboard returns the record counts and chain totals.
func (h Handlers) Dashboard(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := h.Ledger.Stats(ctx)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	return web.Respond(ctx, w, s, http.StatusOK)
}

// Transactions returns the transaction history in commit order.
func (h Handlers) Transactions(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Ledger.Transactions(), http.StatusOK)
}

// Logs returns the activity log lines.
func (h Handlers) Logs(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Ledger.Logs(), http.StatusOK)
}

// Package chaingrp maintains the group of handlers for reading and checking
// the block chain.
package chaingrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ormond/healthchain/business/core/ledger"
	"github.com/ormond/healthchain/business/web/errs"
	"github.com/ormond/healthchain/foundation/validate"
	"github.com/ormond/healthchain/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of chain endpoints.
type Handlers struct {
	Log    *zap.SugaredLogger
	Ledger *ledger.Ledger
}

// Blocks returns every block in the chain starting with genesis.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Ledger.Blocks(), http.StatusOK)
}

// BlockByID returns the block with the specified id.
func (h Handlers) BlockByID(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.ParseUint(web.Param(r, "id"), 10, 64)
	if err != nil {
		return errs.NewTrusted(fmt.Errorf("invalid block id: %w", err), http.StatusBadRequest)
	}

	block, err := h.Ledger.Block(id)
	if err != nil {
		if errors.Is(err, ledger.ErrBlockNotFound) {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		return fmt.Errorf("block: id[%d]: %w", id, err)
	}

	return web.Respond(ctx, w, block, http.StatusOK)
}

// Verify checks the whole chain and reports the first failing block.
func (h Handlers) Verify(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Ledger.Verify(), http.StatusOK)
}

// Tamper shows what verification reports when one block's data is changed.
// The chain itself is left untouched. Data equal to the block's current data
// is rejected since nothing would be tampered.
func (h Handlers) Tamper(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var tr tamperRequest
	if err := web.Decode(r, &tr); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	res, err := h.Ledger.SimulateTamper(tr.ID, tr.Data)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrBlockNotFound):
			return errs.NewTrusted(err, http.StatusNotFound)
		case errors.Is(err, ledger.ErrTamperNoChange):
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return fmt.Errorf("tamper: id[%d]: %w", tr.ID, err)
	}

	return web.Respond(ctx, w, res, http.StatusOK)
}

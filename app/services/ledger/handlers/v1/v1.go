// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/ormond/healthchain/app/services/ledger/handlers/v1/chaingrp"
	"github.com/ormond/healthchain/app/services/ledger/handlers/v1/eventgrp"
	"github.com/ormond/healthchain/app/services/ledger/handlers/v1/recordgrp"
	"github.com/ormond/healthchain/business/core/ledger"
	"github.com/ormond/healthchain/business/core/record"
	"github.com/ormond/healthchain/foundation/events"
	"github.com/ormond/healthchain/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log    *zap.SugaredLogger
	Ledger *ledger.Ledger
	Record *record.Core
	Evts   *events.Events
}

// Routes binds all the version 1 routes.
func Routes(app *web.App, cfg Config) {
	rgh := recordgrp.Handlers{
		Log:    cfg.Log,
		Ledger: cfg.Ledger,
		Record: cfg.Record,
	}
	app.Handle(http.MethodPost, version, "/records", rgh.Create)
	app.Handle(http.MethodGet, version, "/records", rgh.Query)
	app.Handle(http.MethodGet, version, "/dashboard", rgh.Dashboard)
	app.Handle(http.MethodGet, version, "/transactions/list", rgh.Transactions)
	app.Handle(http.MethodGet, version, "/logs/list", rgh.Logs)

	cgh := chaingrp.Handlers{
		Log:    cfg.Log,
		Ledger: cfg.Ledger,
	}
	app.Handle(http.MethodGet, version, "/blocks/list", cgh.Blocks)
	app.Handle(http.MethodGet, version, "/blocks/list/:id", cgh.BlockByID)
	app.Handle(http.MethodGet, version, "/chain/verify", cgh.Verify)
	app.Handle(http.MethodPost, version, "/chain/tamper", cgh.Tamper)

	egh := eventgrp.Handlers{
		Log:  cfg.Log,
		WS:   websocket.Upgrader{},
		Evts: cfg.Evts,
	}
	app.Handle(http.MethodGet, version, "/events", egh.Events)
}

package chaingrp

import "github.com/ormond/healthchain/foundation/validate"

// tamperRequest names the block to tamper with and the data to put in it.
type tamperRequest struct {
	ID   uint64 `json:"id" validate:"required"`
	Data string `json:"data" validate:"max=256"`
}

// Validate checks the request is well formed.
func (tr tamperRequest) Validate() error {
	return validate.Check(tr)
}

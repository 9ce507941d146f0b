package main

import (
	"context"
	"fmt"

	"github.com/ormond/healthchain/business/core/ledger"
	"github.com/ormond/healthchain/business/core/record"
)

// demoEntries is the data loaded into an empty store so the dashboard has
// something to show on first start.
var demoEntries = []record.NewEntry{
	{EntityType: "patient", ID: "P001", Name: "Ashika", Extra1: "Fever", Extra2: "Dr. Kumuthini"},
	{EntityType: "doctor", ID: "D001", Name: "Dr. Kumuthini", Extra1: "General Medicine"},
	{EntityType: "doctor", ID: "D002", Name: "Dr. Ramesh", Extra1: "Cardiology"},
	{EntityType: "insurance", ID: "C001", Name: "P001", Extra1: "HealthInsure", Extra2: "5000"},
	{EntityType: "pharmacy", ID: "PH001", Name: "MediCare Pharmacy", Extra1: "Paracetamol"},
}

// seed submits the demo entries when no records are stored yet. Records
// already in the store are not replayed into the chain.
func seed(ctx context.Context, rc *record.Core, ldg *ledger.Ledger) (int, error) {
	cnt, err := rc.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}

	if cnt != (record.Counts{}) {
		return 0, nil
	}

	for _, ne := range demoEntries {
		if _, err := ldg.Submit(ctx, ne); err != nil {
			return 0, fmt.Errorf("submit: type[%s] id[%s]: %w", ne.EntityType, ne.ID, err)
		}
	}

	return len(demoEntries), nil
}

package chain_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/ormond/healthchain/foundation/blockchain/chain"
)

// build mines n blocks on top of genesis and returns the chain.
func build(t *testing.T, n int) *chain.Chain {
	c := chain.New(nil)

	for i := 0; i < n; i++ {
		head := c.Latest()

		b, err := chain.Mine(context.Background(), chain.MineArgs{
			ID:         head.ID + 1,
			Timestamp:  fmt.Sprintf("2025-02-27T11:%02d:00.000Z", i),
			PrevHash:   head.Hash,
			Data:       fmt.Sprintf("Added patient P%03d with diagnosis Fever", i),
			Difficulty: chain.DefaultDifficulty,
		})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine block %d: %v", failed, head.ID+1, err)
		}

		if err := c.Append(b); err != nil {
			t.Fatalf("\t%s\tShould be able to append block %d: %v", failed, b.ID, err)
		}
	}

	return c
}

// =============================================================================

func Test_TamperScenario(t *testing.T) {
	t.Log("Given the need to detect a block whose data was changed.")
	{
		genesis := chain.Genesis()

		block2, err := chain.Mine(context.Background(), chain.MineArgs{
			ID:         2,
			Timestamp:  block2Time,
			PrevHash:   genesis.Hash,
			Data:       "Patient P001 - Fever",
			Difficulty: chain.DefaultDifficulty,
		})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine block 2: %v", failed, err)
		}

		t.Log("\tWhen verifying the untouched blocks.")
		{
			if !chain.Verify([]chain.Block{genesis, block2}) {
				t.Fatalf("\t%s\tShould verify the chain.", failed)
			}
			t.Logf("\t%s\tShould verify the chain.", success)
		}

		t.Log("\tWhen the data of block 2 is changed without rehashing.")
		{
			tampered := chain.Tamper(block2, "Patient P001 - Flu")

			if tampered.Hash != block2.Hash || tampered.Nonce != block2.Nonce {
				t.Fatalf("\t%s\tShould keep the original hash and nonce.", failed)
			}
			t.Logf("\t%s\tShould keep the original hash and nonce.", success)

			if block2.Data != "Patient P001 - Fever" {
				t.Fatalf("\t%s\tShould not modify the original block.", failed)
			}
			t.Logf("\t%s\tShould not modify the original block.", success)

			res := chain.Check([]chain.Block{genesis, tampered})
			if res.Valid {
				t.Fatalf("\t%s\tShould fail verification.", failed)
			}
			t.Logf("\t%s\tShould fail verification.", success)

			if res.Index != 1 || res.BlockID != 2 || res.Reason != chain.ReasonHash {
				t.Fatalf("\t%s\tShould identify block 2 with an invalid hash: %+v", failed, res)
			}
			t.Logf("\t%s\tShould identify block 2 with an invalid hash.", success)

			if res.String() != "Block 2 has invalid hash" {
				t.Fatalf("\t%s\tShould describe the failure: %s", failed, res)
			}
			t.Logf("\t%s\tShould describe the failure.", success)
		}
	}
}

func Test_Verify(t *testing.T) {
	const blocks = 5

	t.Log("Given the need to verify chains built by appending mined blocks.")
	{
		c := build(t, blocks)
		all := c.All()

		t.Log("\tWhen verifying the chain.")
		{
			if len(all) != blocks+1 {
				t.Fatalf("\t%s\tShould have %d blocks, got %d.", failed, blocks+1, len(all))
			}

			if !chain.Verify(all) || !chain.Verify(all) {
				t.Fatalf("\t%s\tShould verify the chain every time.", failed)
			}
			t.Logf("\t%s\tShould verify the chain every time.", success)

			for i := 1; i < len(all); i++ {
				if all[i].PrevHash != all[i-1].Hash || all[i].ID != all[i-1].ID+1 {
					t.Fatalf("\t%s\tShould link block %d to its parent.", failed, all[i].ID)
				}
			}
			t.Logf("\t%s\tShould link every block to its parent.", success)
		}

		t.Log("\tWhen tampering with each block in turn.")
		{
			for i, b := range all {
				tampered, err := chain.Replace(all, i, chain.Tamper(b, b.Data+" (edited)"))
				if err != nil {
					t.Fatalf("\t%s\tShould be able to replace block %d: %v", failed, b.ID, err)
				}

				res := chain.Check(tampered)
				if res.Valid || res.Index != i {
					t.Fatalf("\t%s\tShould fail at block %d: %+v", failed, b.ID, res)
				}
			}
			t.Logf("\t%s\tShould fail at the tampered block.", success)

			if !chain.Verify(c.All()) {
				t.Fatalf("\t%s\tShould leave the store untouched.", failed)
			}
			t.Logf("\t%s\tShould leave the store untouched.", success)
		}

		t.Log("\tWhen a hash field is changed.")
		{
			for i := 1; i < len(all)-1; i++ {
				b := all[i]
				b.Hash = "00" + b.Hash[2:len(b.Hash)-1] + "x"

				mutated, err := chain.Replace(all, i, b)
				if err != nil {
					t.Fatalf("\t%s\tShould be able to replace block %d: %v", failed, b.ID, err)
				}

				res := chain.Check(mutated)
				if res.Valid {
					t.Fatalf("\t%s\tShould fail verification for block %d.", failed, b.ID)
				}
				if res.Reason != chain.ReasonHash || res.Index != i {
					t.Fatalf("\t%s\tShould report the mutated block first: %+v", failed, res)
				}
			}
			t.Logf("\t%s\tShould fail verification.", success)
		}

		t.Log("\tWhen a block is rehashed after its data changes.")
		{
			b := chain.Tamper(all[2], "rewritten")
			b.Hash = b.ComputeHash()

			rewritten, _ := chain.Replace(all, 2, b)

			res := chain.Check(rewritten)
			if res.Valid || res.Index != 3 || res.Reason != chain.ReasonLinkage {
				t.Fatalf("\t%s\tShould fail linkage at the next block: %+v", failed, res)
			}
			t.Logf("\t%s\tShould fail linkage at the next block.", success)
		}

		t.Log("\tWhen replacing outside the chain.")
		{
			if _, err := chain.Replace(all, len(all), all[0]); err == nil {
				t.Fatalf("\t%s\tShould get an error.", failed)
			}
			t.Logf("\t%s\tShould get an error.", success)
		}
	}
}

func Test_VerifyEmpty(t *testing.T) {
	t.Log("Given the need to handle an empty sequence.")
	{
		if !chain.Verify(nil) {
			t.Fatalf("\t%s\tShould treat an empty chain as valid.", failed)
		}
		t.Logf("\t%s\tShould treat an empty chain as valid.", success)
	}
}

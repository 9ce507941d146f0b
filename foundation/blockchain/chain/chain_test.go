package chain_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ormond/healthchain/foundation/blockchain/chain"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const (
	genesisHash = "94e8ff5cbe22852e58de4492f9b7de22582ebc7bac0d6f2e4054e46f55501b90"
	block2Time  = "2025-02-27T10:15:00.000Z"
	block2Data  = "Patient P001 - Fever"
	block2Nonce = 315
	block2Hash  = "00197d3bc7b180ec1483cad5498586fb9056132453338cfee197b50d4d1b253d"
)

// =============================================================================

func Test_Hash(t *testing.T) {
	type table struct {
		name      string
		id        uint64
		timestamp string
		prevHash  string
		data      string
		nonce     uint64
		hash      string
	}

	tt := []table{
		{
			name:      "genesis",
			id:        1,
			timestamp: "2025-02-27T10:00:00.000Z",
			prevHash:  "0",
			data:      "Genesis Block",
			nonce:     0,
			hash:      genesisHash,
		},
		{
			name: "empty",
			id:   0,
			hash: "f1534392279bddbf9d43dde8701cb5be14b82f76ec6607bf8d6ad557f60f304e",
		},
		{
			name:      "utf8",
			id:        7,
			timestamp: "t",
			prevHash:  "p",
			data:      "Ünïcode",
			nonce:     3,
			hash:      "be16a89fbf1ec3bc5690e6a2cd5ed82710ed60e833bc64f717f85297d958032b",
		},
		{
			name:      "block2",
			id:        2,
			timestamp: block2Time,
			prevHash:  genesisHash,
			data:      block2Data,
			nonce:     block2Nonce,
			hash:      block2Hash,
		},
	}

	t.Log("Given the need to hash block fields.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen handling %s.", testID, tst.name)
				{
					got := chain.Hash(tst.id, tst.timestamp, tst.prevHash, tst.data, tst.nonce)
					if got != tst.hash {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, got)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.hash)
						t.Fatalf("\t%s\tTest %d:\tShould get the expected hash.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected hash.", success, testID)

					if again := chain.Hash(tst.id, tst.timestamp, tst.prevHash, tst.data, tst.nonce); again != got {
						t.Fatalf("\t%s\tTest %d:\tShould get the same hash twice.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the same hash twice.", success, testID)

					if changed := chain.Hash(tst.id, tst.timestamp, tst.prevHash, tst.data+"x", tst.nonce); changed == got {
						t.Fatalf("\t%s\tTest %d:\tShould get a different hash when data changes.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get a different hash when data changes.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_Genesis(t *testing.T) {
	t.Log("Given the need to start a chain from a fixed genesis block.")
	{
		c := chain.New(nil)

		if c.Len() != 1 {
			t.Fatalf("\t%s\tShould have exactly one block, got %d.", failed, c.Len())
		}
		t.Logf("\t%s\tShould have exactly one block.", success)

		g := c.Latest()
		if g.ID != 1 || g.PrevHash != "0" || g.Data != "Genesis Block" || g.Nonce != 0 {
			t.Fatalf("\t%s\tShould have the genesis constants: %+v", failed, g)
		}
		t.Logf("\t%s\tShould have the genesis constants.", success)

		if g.Hash != genesisHash || !g.HasValidHash() {
			t.Logf("\t%s\tgot: %s", failed, g.Hash)
			t.Logf("\t%s\texp: %s", failed, genesisHash)
			t.Fatalf("\t%s\tShould have a computed genesis hash.", failed)
		}
		t.Logf("\t%s\tShould have a computed genesis hash.", success)
	}
}

func Test_Mine(t *testing.T) {
	t.Log("Given the need to mine blocks.")
	{
		t.Log("\tWhen mining the scenario block at the default difficulty.")
		{
			b, err := chain.Mine(context.Background(), chain.MineArgs{
				ID:         2,
				Timestamp:  block2Time,
				PrevHash:   genesisHash,
				Data:       block2Data,
				Difficulty: chain.DefaultDifficulty,
			})
			if err != nil {
				t.Fatalf("\t%s\tShould be able to mine the block: %v", failed, err)
			}
			t.Logf("\t%s\tShould be able to mine the block.", success)

			if b.Nonce != block2Nonce || b.Hash != block2Hash {
				t.Logf("\t%s\tgot: %d %s", failed, b.Nonce, b.Hash)
				t.Logf("\t%s\texp: %d %s", failed, block2Nonce, block2Hash)
				t.Fatalf("\t%s\tShould find the first solving nonce.", failed)
			}
			t.Logf("\t%s\tShould find the first solving nonce.", success)

			if !b.HasValidHash() {
				t.Fatalf("\t%s\tShould have a hash matching its fields.", failed)
			}
			t.Logf("\t%s\tShould have a hash matching its fields.", success)
		}

		t.Log("\tWhen mining at a range of difficulties.")
		{
			for d := 0; d <= 3; d++ {
				b, err := chain.Mine(context.Background(), chain.MineArgs{
					ID:         9,
					Timestamp:  chain.Timestamp(time.Now()),
					PrevHash:   genesisHash,
					Data:       "Added doctor Dr. Ramesh, specialty: Cardiology",
					Difficulty: d,
				})
				if err != nil {
					t.Fatalf("\t%s\tShould be able to mine at difficulty %d: %v", failed, d, err)
				}

				if !strings.HasPrefix(b.Hash, strings.Repeat("0", d)) || !chain.IsHashSolved(d, b.Hash) {
					t.Fatalf("\t%s\tShould have %d leading zeros: %s", failed, d, b.Hash)
				}

				if b.Nonce < 1 {
					t.Fatalf("\t%s\tShould start searching at nonce 1: %d", failed, b.Nonce)
				}
				t.Logf("\t%s\tShould have %d leading zeros.", success, d)
			}
		}

		t.Log("\tWhen mining with an invalid difficulty.")
		{
			for _, d := range []int{-1, 65} {
				_, err := chain.Mine(context.Background(), chain.MineArgs{Difficulty: d})
				if !errors.Is(err, chain.ErrInvalidDifficulty) {
					t.Fatalf("\t%s\tShould reject difficulty %d: %v", failed, d, err)
				}
			}
			t.Logf("\t%s\tShould reject difficulties out of range.", success)
		}

		t.Log("\tWhen mining runs out of attempts.")
		{
			_, err := chain.Mine(context.Background(), chain.MineArgs{
				ID:          2,
				Timestamp:   block2Time,
				PrevHash:    genesisHash,
				Data:        block2Data,
				Difficulty:  64,
				MaxAttempts: 10,
			})
			if !errors.Is(err, chain.ErrMiningTimeout) {
				t.Fatalf("\t%s\tShould get a mining timeout: %v", failed, err)
			}
			t.Logf("\t%s\tShould get a mining timeout.", success)
		}

		t.Log("\tWhen mining is cancelled.")
		{
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := chain.Mine(ctx, chain.MineArgs{ID: 2, PrevHash: genesisHash, Difficulty: 64})
			if !errors.Is(err, chain.ErrMiningAborted) || !errors.Is(err, context.Canceled) {
				t.Fatalf("\t%s\tShould get a mining aborted error: %v", failed, err)
			}
			t.Logf("\t%s\tShould get a mining aborted error.", success)
		}
	}
}

func Test_Append(t *testing.T) {
	t.Log("Given the need to only append blocks that follow the head.")
	{
		c := chain.New(nil)
		genesis := c.Latest()

		b2, err := chain.Mine(context.Background(), chain.MineArgs{
			ID:         2,
			Timestamp:  block2Time,
			PrevHash:   genesis.Hash,
			Data:       block2Data,
			Difficulty: 2,
		})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine block 2: %v", failed, err)
		}

		t.Log("\tWhen appending a block with a stale previous hash.")
		{
			stale := b2
			stale.PrevHash = strings.Repeat("f", 64)
			stale.Hash = stale.ComputeHash()

			err := c.Append(stale)
			if !errors.Is(err, chain.ErrChainLinkage) {
				t.Fatalf("\t%s\tShould get a linkage error: %v", failed, err)
			}

			var le *chain.LinkageError
			if !errors.As(err, &le) || le.HeadHash != genesis.Hash {
				t.Fatalf("\t%s\tShould get the head in the linkage error: %v", failed, err)
			}

			if c.Len() != 1 {
				t.Fatalf("\t%s\tShould not change the chain.", failed)
			}
			t.Logf("\t%s\tShould reject the block.", success)
		}

		t.Log("\tWhen appending a block with the wrong number.")
		{
			wrong := b2
			wrong.ID = 3
			wrong.Hash = wrong.ComputeHash()

			if err := c.Append(wrong); !errors.Is(err, chain.ErrChainLinkage) {
				t.Fatalf("\t%s\tShould get a linkage error: %v", failed, err)
			}
			t.Logf("\t%s\tShould reject the block.", success)
		}

		t.Log("\tWhen appending a block whose hash does not match.")
		{
			bad := chain.Tamper(b2, "Patient P001 - Flu")

			if err := c.Append(bad); !errors.Is(err, chain.ErrInvalidHash) {
				t.Fatalf("\t%s\tShould get an invalid hash error: %v", failed, err)
			}
			t.Logf("\t%s\tShould reject the block.", success)
		}

		t.Log("\tWhen appending the mined block.")
		{
			if err := c.Append(b2); err != nil {
				t.Fatalf("\t%s\tShould be able to append: %v", failed, err)
			}
			t.Logf("\t%s\tShould be able to append.", success)

			if c.Latest() != b2 {
				t.Fatalf("\t%s\tShould have the block as the head.", failed)
			}
			t.Logf("\t%s\tShould have the block as the head.", success)

			got, err := c.Block(2)
			if err != nil || got != b2 {
				t.Fatalf("\t%s\tShould find the block by id: %v", failed, err)
			}
			t.Logf("\t%s\tShould find the block by id.", success)

			if _, err := c.Block(3); !errors.Is(err, chain.ErrNotFound) {
				t.Fatalf("\t%s\tShould not find a missing block: %v", failed, err)
			}
			t.Logf("\t%s\tShould not find a missing block.", success)

			all := c.All()
			all[0].Data = "changed"
			if c.All()[0].Data != chain.GenesisData {
				t.Fatalf("\t%s\tShould return a copy of the blocks.", failed)
			}
			t.Logf("\t%s\tShould return a copy of the blocks.", success)
		}
	}
}

package events_test

import (
	"testing"

	"github.com/ormond/healthchain/foundation/events"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Events(t *testing.T) {
	t.Log("Given the need to fan out ledger events.")
	{
		evts := events.New()

		ch1 := evts.Acquire("viewer-1")
		ch2 := evts.Acquire("viewer-2")

		if evts.Receivers() != 2 {
			t.Fatalf("\t%s\tShould have two receivers, got %d.", failed, evts.Receivers())
		}
		t.Logf("\t%s\tShould have two receivers.", success)

		evts.Send("ledger: block added")

		for i, ch := range []<-chan string{ch1, ch2} {
			if msg := <-ch; msg != "ledger: block added" {
				t.Fatalf("\t%s\tShould receive the event on receiver %d: %q", failed, i, msg)
			}
		}
		t.Logf("\t%s\tShould receive the event on every receiver.", success)

		if err := evts.Release("viewer-1"); err != nil {
			t.Fatalf("\t%s\tShould be able to release a receiver: %v", failed, err)
		}
		if _, open := <-ch1; open {
			t.Fatalf("\t%s\tShould close a released channel.", failed)
		}
		t.Logf("\t%s\tShould close a released channel.", success)

		if err := evts.Release("viewer-1"); err == nil {
			t.Fatalf("\t%s\tShould not release a receiver twice.", failed)
		}
		t.Logf("\t%s\tShould not release a receiver twice.", success)

		evts.Shutdown()
		if _, open := <-ch2; open || evts.Receivers() != 0 {
			t.Fatalf("\t%s\tShould close every channel on shutdown.", failed)
		}
		t.Logf("\t%s\tShould close every channel on shutdown.", success)
	}
}

package assert_test

import (
	"testing"

	"github.com/jetsetilly/vcsaudio/assert"
)

func TestGoRoutineID(t *testing.T) {
	id := assert.GetGoRoutineID()
	if id == 0 {
		t.Fatalf("goroutine ID should not be zero")
	}
	if id != assert.GetGoRoutineID() {
		t.Errorf("goroutine ID should be consistent")
	}

	other := make(chan uint64)
	go func() {
		other <- assert.GetGoRoutineID()
	}()
	if id == <-other {
		t.Errorf("goroutine ID should be different for different goroutines")
	}
}

func TestOwner(t *testing.T) {
	var o assert.Owner
	if !o.IsOwner() {
		t.Errorf("an unclaimed owner should allow any goroutine")
	}

	o.Claim()
	if !o.IsOwner() {
		t.Errorf("claiming goroutine should be the owner")
	}

	other := make(chan bool)
	go func() {
		other <- o.IsOwner()
	}()
	if <-other {
		t.Errorf("a different goroutine should not be the owner")
	}
}

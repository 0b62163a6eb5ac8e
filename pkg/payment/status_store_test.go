package payment

import (
	"sync"
	"testing"
)

func TestStatusStore(t *testing.T) {
	t.Run("set and get", func(t *testing.T) {
		store := NewStatusStore()

		if _, ok := store.Get("LP-NONE"); ok {
			t.Fatal("empty store must not report entries")
		}

		store.Set("LP-A", State{Status: StatusPending})
		state, ok := store.Get("LP-A")
		if !ok || state.Status != StatusPending {
			t.Fatalf("state = %+v", state)
		}

		store.Set("LP-A", State{Status: StatusFailed, FailureReason: "insufficient funds"})
		state, _ = store.Get("LP-A")
		if state.Status != StatusFailed || state.FailureReason != "insufficient funds" {
			t.Fatalf("state after overwrite = %+v", state)
		}
		if store.Len() != 1 {
			t.Errorf("len = %d, want 1", store.Len())
		}
	})

	t.Run("concurrent writers", func(t *testing.T) {
		store := NewStatusStore()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				store.Set("LP-SHARED", State{Status: StatusPending})
				store.Get("LP-SHARED")
			}()
		}
		wg.Wait()

		if store.Len() != 1 {
			t.Errorf("len = %d, want 1", store.Len())
		}
	})
}

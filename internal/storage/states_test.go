package storage

import (
	"bytes"
	"testing"
)

func TestStoreSavedStates(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.LoadState("local/pipes"); err != nil || ok {
		t.Fatalf("LoadState on empty table = ok %v, err %v", ok, err)
	}

	if err := store.SaveState("local/pipes", []byte("first")); err != nil {
		t.Fatalf("SaveState() failed: %v", err)
	}
	if err := store.SaveState("local/pipes", []byte("second")); err != nil {
		t.Fatalf("SaveState() overwrite failed: %v", err)
	}
	if err := store.SaveState("ssh:alice/pipes", []byte("other")); err != nil {
		t.Fatalf("SaveState() failed: %v", err)
	}

	data, ok, err := store.LoadState("local/pipes")
	if err != nil || !ok {
		t.Fatalf("LoadState() = ok %v, err %v", ok, err)
	}
	if !bytes.Equal(data, []byte("second")) {
		t.Errorf("LoadState() = %q, expected the latest save", data)
	}

	if err := store.DeleteState("local/pipes"); err != nil {
		t.Fatalf("DeleteState() failed: %v", err)
	}
	if _, ok, _ := store.LoadState("local/pipes"); ok {
		t.Error("state still present after delete")
	}
	if _, ok, _ := store.LoadState("ssh:alice/pipes"); !ok {
		t.Error("deleting one key removed another")
	}

	if err := store.DeleteState("never-saved"); err != nil {
		t.Errorf("DeleteState() of a missing key = %v", err)
	}
}

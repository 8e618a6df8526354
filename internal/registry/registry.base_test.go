package registry

import (
	"errors"
	"testing"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("customers", 1)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !isNew {
		t.Error("first Register must report a new entry")
	}

	got, exists := r.Get("customers")
	if !exists || got != 1 {
		t.Errorf("Get = (%v, %v), want (1, true)", got, exists)
	}

	isNew, err = r.Register("customers", 2)
	if err != nil {
		t.Fatalf("re-Register failed: %v", err)
	}
	if isNew {
		t.Error("re-Register must not report a new entry")
	}
	if got, _ := r.Get("customers"); got != 2 {
		t.Errorf("re-Register must replace the entry, got %v", got)
	}
}

func TestRegistry_GetMissing(t *testing.T) {
	r := NewRegistry[string]()
	if _, exists := r.Get("nope"); exists {
		t.Error("Get on missing name must report not found")
	}
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry[string]()

	calls := 0
	creator := func() (string, error) {
		calls++
		return "created", nil
	}

	got, err := r.GetOrCreate("tariffs", creator)
	if err != nil || got != "created" {
		t.Fatalf("GetOrCreate = (%v, %v)", got, err)
	}
	got, err = r.GetOrCreate("tariffs", creator)
	if err != nil || got != "created" {
		t.Fatalf("second GetOrCreate = (%v, %v)", got, err)
	}
	if calls != 1 {
		t.Errorf("creator ran %d times, want 1", calls)
	}

	wantErr := errors.New("boom")
	if _, err := r.GetOrCreate("broken", func() (string, error) { return "", wantErr }); !errors.Is(err, wantErr) {
		t.Errorf("creator error not surfaced: %v", err)
	}
}

func TestRegistry_Clear(t *testing.T) {
	r := NewRegistry[int]()
	r.Register("a", 1)
	r.Register("b", 2)

	deleted, err := r.Clear("a", nil)
	if err != nil || !deleted {
		t.Fatalf("Clear = (%v, %v)", deleted, err)
	}
	if _, exists := r.Get("a"); exists {
		t.Error("entry still present after Clear")
	}

	count, err := r.ClearAll(nil)
	if err != nil || count != 1 {
		t.Errorf("ClearAll = (%d, %v), want (1, nil)", count, err)
	}
}

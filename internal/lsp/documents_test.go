package lsp

import (
	"sync"
	"testing"
)

const validDoc = `palette {
  base = "#191724"
}
`

func TestDocumentStore_Update(t *testing.T) {
	store := NewDocumentStore()

	store.Open("test://file.hcl", "initial content")

	content, ok := store.Get("test://file.hcl")
	if !ok {
		t.Fatal("Document not found after opening")
	}
	if content != "initial content" {
		t.Errorf("Expected 'initial content', got '%s'", content)
	}

	store.Update("test://file.hcl", "updated content")

	content, ok = store.Get("test://file.hcl")
	if !ok {
		t.Fatal("Document not found after update")
	}
	if content != "updated content" {
		t.Errorf("Expected 'updated content', got '%s'", content)
	}
}

func TestDocumentStore_Result(t *testing.T) {
	store := NewDocumentStore()

	if got := store.Result("test://file.hcl"); got != nil {
		t.Fatalf("Result of unopened document = %v, want nil", got)
	}

	opened := store.Open("test://file.hcl", validDoc)
	if len(opened.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", opened.Diagnostics)
	}
	if store.Result("test://file.hcl") != opened {
		t.Error("Result should return the analysis produced by Open")
	}

	updated := store.Update("test://file.hcl", `palette {
  base = "nope"
}
`)
	if len(updated.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic after update, got %d", len(updated.Diagnostics))
	}
	if store.Result("test://file.hcl") != updated {
		t.Error("Result should return the analysis produced by Update")
	}

	store.Close("test://file.hcl")
	if _, ok := store.Get("test://file.hcl"); ok {
		t.Error("Document still present after Close")
	}
	if store.Result("test://file.hcl") != nil {
		t.Error("Result still present after Close")
	}
}

func TestDocumentStore_MultipleUpdates(t *testing.T) {
	store := NewDocumentStore()
	store.Open("test://file.hcl", "version 1")

	updates := []string{
		"version 2",
		"version 3",
		"version 4",
	}

	for i, update := range updates {
		store.Update("test://file.hcl", update)
		content, ok := store.Get("test://file.hcl")
		if !ok {
			t.Fatalf("Document not found after update %d", i+2)
		}
		if content != update {
			t.Errorf("Update %d: expected '%s', got '%s'", i+2, update, content)
		}
	}
}

func TestDocumentStore_ConcurrentAccess(t *testing.T) {
	store := NewDocumentStore()
	store.Open("test://file.hcl", validDoc)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Update("test://file.hcl", validDoc)
		}()
		go func() {
			defer wg.Done()
			store.Result("test://file.hcl")
		}()
	}
	wg.Wait()

	content, ok := store.Get("test://file.hcl")
	if !ok {
		t.Error("Document not found after concurrent updates")
	}
	if content != validDoc {
		t.Error("Document content changed after concurrent updates")
	}
}

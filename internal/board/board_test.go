package board

import (
	"fmt"
	"sync"
	"testing"

	"github.com/muralboard/mural/internal/domain"
)

func TestNewBoard(t *testing.T) {
	b := New()
	if b == nil {
		t.Fatal("New() returned nil")
	}
	if got := b.Count(); got != 0 {
		t.Errorf("New() should start empty, got %v reminders", got)
	}
}

func TestPutAndGet(t *testing.T) {
	b := New()
	b.Put(&domain.Reminder{ID: "r1", Title: "Pay rent"})

	r, ok := b.Get("r1")
	if !ok {
		t.Fatal("Get() did not find stored reminder")
	}
	if r.Title != "Pay rent" {
		t.Errorf("Get() title = %v, want Pay rent", r.Title)
	}

	if _, ok := b.Get("missing"); ok {
		t.Error("Get() found a reminder that was never stored")
	}
}

func TestGetReturnsClone(t *testing.T) {
	b := New()
	b.Put(&domain.Reminder{ID: "r1", Title: "original"})

	r, _ := b.Get("r1")
	r.Title = "mutated"

	again, _ := b.Get("r1")
	if again.Title != "original" {
		t.Errorf("board state leaked through Get(), title = %v", again.Title)
	}
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	b := New()
	for i := 0; i < 5; i++ {
		b.Put(&domain.Reminder{ID: fmt.Sprintf("r%d", i)})
	}

	all := b.All()
	if len(all) != 5 {
		t.Fatalf("All() = %v reminders, want 5", len(all))
	}
	for i, r := range all {
		if want := fmt.Sprintf("r%d", i); r.ID != want {
			t.Errorf("All()[%d] = %v, want %v", i, r.ID, want)
		}
	}
}

func TestPutExistingKeepsPosition(t *testing.T) {
	b := New()
	b.Put(&domain.Reminder{ID: "a"})
	b.Put(&domain.Reminder{ID: "b"})
	b.Put(&domain.Reminder{ID: "a", Title: "updated"})

	all := b.All()
	if all[0].ID != "a" || all[0].Title != "updated" {
		t.Errorf("Put() of existing id should update in place, got %+v", all[0])
	}
	if len(all) != 2 {
		t.Errorf("Put() of existing id should not grow the board, got %v", len(all))
	}
}

func TestDelete(t *testing.T) {
	b := New()
	b.Put(&domain.Reminder{ID: "r1"})
	b.Put(&domain.Reminder{ID: "r2"})

	if !b.Delete("r1") {
		t.Error("Delete() = false for existing reminder")
	}
	if b.Delete("r1") {
		t.Error("Delete() = true for already-deleted reminder")
	}
	if got := b.Count(); got != 1 {
		t.Errorf("Count() after delete = %v, want 1", got)
	}
	if order := b.Order(); len(order) != 1 || order[0] != "r2" {
		t.Errorf("Order() after delete = %v, want [r2]", order)
	}
}

func TestReorder(t *testing.T) {
	b := New()
	b.Put(&domain.Reminder{ID: "a"})
	b.Put(&domain.Reminder{ID: "b"})
	b.Put(&domain.Reminder{ID: "c"})

	if err := b.Reorder([]string{"c", "a", "b"}); err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}
	all := b.All()
	if all[0].ID != "c" || all[1].ID != "a" || all[2].ID != "b" {
		t.Errorf("Reorder() not applied, got %v %v %v", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestReorderRejectsBadInput(t *testing.T) {
	b := New()
	b.Put(&domain.Reminder{ID: "a"})
	b.Put(&domain.Reminder{ID: "b"})

	if err := b.Reorder([]string{"a"}); err == nil {
		t.Error("Reorder() with missing ids should fail")
	}
	if err := b.Reorder([]string{"a", "x"}); err == nil {
		t.Error("Reorder() with unknown id should fail")
	}
	if err := b.Reorder([]string{"a", "a"}); err == nil {
		t.Error("Reorder() with duplicate id should fail")
	}
}

func TestMergeSkipsExisting(t *testing.T) {
	b := New()
	b.Put(&domain.Reminder{ID: "r1", Title: "user edit"})

	added := b.Merge([]*domain.Reminder{
		{ID: "r1", Title: "clobber attempt"},
		{ID: "r2", Title: "new occurrence"},
	})
	if added != 1 {
		t.Errorf("Merge() added = %v, want 1", added)
	}
	r, _ := b.Get("r1")
	if r.Title != "user edit" {
		t.Errorf("Merge() overwrote existing reminder, title = %v", r.Title)
	}
}

func TestHydrateHonorsOrderAndAppendsStragglers(t *testing.T) {
	b := New()
	reminders := []*domain.Reminder{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}
	// Order list is stale: mentions a deleted id, misses "c".
	b.Hydrate(reminders, nil, []string{"b", "ghost", "a"}, "my board")

	all := b.All()
	if len(all) != 3 {
		t.Fatalf("Hydrate() kept %v reminders, want 3", len(all))
	}
	if all[0].ID != "b" || all[1].ID != "a" || all[2].ID != "c" {
		t.Errorf("Hydrate() order = %v %v %v, want b a c", all[0].ID, all[1].ID, all[2].ID)
	}
	if b.Name() != "my board" {
		t.Errorf("Name() = %v, want my board", b.Name())
	}
	if b.LastSync().IsZero() {
		t.Error("LastSync() should be set after Hydrate()")
	}
}

func TestDeleteCategoryDetachesReminders(t *testing.T) {
	b := New()
	b.PutCategory(&domain.Category{ID: "cat1", Name: "work"})
	b.Put(&domain.Reminder{ID: "r1", CategoryID: "cat1"})
	b.Put(&domain.Reminder{ID: "r2", CategoryID: "cat1"})
	b.Put(&domain.Reminder{ID: "r3", CategoryID: "other"})

	detached, ok := b.DeleteCategory("cat1")
	if !ok {
		t.Fatal("DeleteCategory() = false for existing category")
	}
	if len(detached) != 2 {
		t.Errorf("DeleteCategory() detached %v reminders, want 2", len(detached))
	}
	if got := b.Count(); got != 3 {
		t.Errorf("DeleteCategory() must not delete reminders, count = %v", got)
	}
	r, _ := b.Get("r1")
	if r.CategoryID != "" {
		t.Errorf("reminder still references deleted category: %v", r.CategoryID)
	}
	r3, _ := b.Get("r3")
	if r3.CategoryID != "other" {
		t.Errorf("unrelated reminder was detached: %v", r3.CategoryID)
	}

	if _, ok := b.DeleteCategory("cat1"); ok {
		t.Error("DeleteCategory() = true for already-deleted category")
	}
}

func TestConcurrentAccess(t *testing.T) {
	b := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			b.Put(&domain.Reminder{ID: fmt.Sprintf("r%d", n)})
		}(i)
		go func() {
			defer wg.Done()
			_ = b.All()
			_ = b.Count()
		}()
	}
	wg.Wait()

	if got := b.Count(); got != 10 {
		t.Errorf("Count() after concurrent puts = %v, want 10", got)
	}
}

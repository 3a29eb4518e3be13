package uuid

import "testing"

func TestNew(t *testing.T) {
	t.Run("produces_version_7", func(t *testing.T) {
		id := New()
		if !IsValid(id) {
			t.Fatalf("New() = %q is not a valid UUID", id)
		}
		if v := Version(id); v != 7 {
			t.Errorf("version = %d, want 7", v)
		}
	})

	t.Run("ids_sort_by_creation", func(t *testing.T) {
		prev := New()
		for i := 0; i < 50; i++ {
			next := New()
			if next < prev {
				t.Fatalf("id %q sorted before previous %q", next, prev)
			}
			prev = next
		}
	})
}

func TestParse(t *testing.T) {
	if _, err := Parse("not-a-uuid"); err == nil {
		t.Error("expected error for malformed input")
	}
	got, err := Parse("0190A3B2-0000-7000-8000-000000000001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0190a3b2-0000-7000-8000-000000000001" {
		t.Errorf("Parse normalized to %q", got)
	}
}

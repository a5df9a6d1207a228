package i18n

import "testing"

func TestNew_RejectsUnknownDefault(t *testing.T) {
	if _, err := New("xx"); err == nil {
		t.Fatal("expected error for unknown default locale")
	}
}

func TestMessage_LocaleFallbacks(t *testing.T) {
	catalog, err := New("en")
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if got := catalog.Message("en", "error.pagination"); got != "Pagination parameters must be positive integers." {
		t.Fatalf("unexpected message: %q", got)
	}

	// Unknown locale falls back to the default bundle.
	if got := catalog.Message("xx", "error.pagination"); got != catalog.Message("en", "error.pagination") {
		t.Fatalf("unknown locale did not fall back: %q", got)
	}

	// Unknown key falls back to the key itself.
	if got := catalog.Message("en", "error.nonexistent"); got != "error.nonexistent" {
		t.Fatalf("unknown key did not fall back: %q", got)
	}
}

func TestMessage_FormatsArgs(t *testing.T) {
	catalog, err := New("en")
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	got := catalog.Message("en", "error.requiredField", "name")
	if got != "Required field is missing: name." {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestMessage_RussianBundle(t *testing.T) {
	catalog, err := New("en")
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	en := catalog.Message("en", "error.authentication")
	ru := catalog.Message("ru", "error.authentication")
	if ru == "" || ru == en {
		t.Fatalf("russian bundle not loaded: %q", ru)
	}
}

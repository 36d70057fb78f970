package domain

import "testing"

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestCollectionIsValid(t *testing.T) {
	valid := []Collection{CollectionRead, CollectionUnread, CollectionWishlist}
	for _, c := range valid {
		if !c.IsValid() {
			t.Errorf("%q: expected valid", c)
		}
	}

	invalid := []Collection{"", "read", "READING", "OWNED"}
	for _, c := range invalid {
		if c.IsValid() {
			t.Errorf("%q: expected invalid", c)
		}
	}
}

func TestNormalize_EmptySeriesClearsSequence(t *testing.T) {
	b := &Book{
		Title:          "Dune",
		Series:         strPtr(""),
		SequenceNumber: intPtr(3),
	}

	b.Normalize()

	if b.Series != nil {
		t.Errorf("Series: expected nil, got %q", *b.Series)
	}
	if b.SequenceNumber != nil {
		t.Errorf("SequenceNumber: expected nil, got %d", *b.SequenceNumber)
	}
}

func TestNormalize_MissingSeriesClearsSequence(t *testing.T) {
	b := &Book{SequenceNumber: intPtr(1)}

	b.Normalize()

	if b.SequenceNumber != nil {
		t.Error("SequenceNumber: expected nil when series is absent")
	}
}

func TestNormalize_KeepsPresentFields(t *testing.T) {
	b := &Book{
		Series:         strPtr("Dune Chronicles"),
		SequenceNumber: intPtr(2),
		ISBN:           strPtr("978-0441013593"),
	}

	b.Normalize()

	if b.Series == nil || *b.Series != "Dune Chronicles" {
		t.Error("Series: expected unchanged")
	}
	if b.SequenceNumber == nil || *b.SequenceNumber != 2 {
		t.Error("SequenceNumber: expected unchanged")
	}
	if b.ISBN == nil || *b.ISBN != "978-0441013593" {
		t.Error("ISBN: expected unchanged")
	}
}

func TestNormalize_WhitespaceISBN(t *testing.T) {
	b := &Book{ISBN: strPtr("  ")}

	b.Normalize()

	if b.ISBN != nil {
		t.Error("ISBN: expected nil for whitespace-only value")
	}
}

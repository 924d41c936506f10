package labels

import "testing"

func TestTotalPages(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{0, 1},
		{1, 1},
		{11, 1},
		{12, 1},
		{13, 2},
		{24, 2},
		{25, 3},
	}
	for _, c := range cases {
		if got := TotalPages(c.n); got != c.want {
			t.Errorf("TotalPages(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestPageSlice(t *testing.T) {
	batch := Expand([]Row{{Task: "Bulk", Quantity: "1", Barcodes: "13"}}, "")

	first := PageSlice(batch, 0)
	if len(first) != 12 {
		t.Fatalf("page 0 holds %d labels, want 12", len(first))
	}
	second := PageSlice(batch, 1)
	if len(second) != 1 {
		t.Fatalf("page 1 holds %d labels, want 1", len(second))
	}
	if second[0].SequenceIndex != 12 {
		t.Errorf("page 1 starts at sequence %d, want 12", second[0].SequenceIndex)
	}
	if got := PageSlice(batch, 2); len(got) != 0 {
		t.Errorf("page beyond the batch returned %d labels", len(got))
	}
	if got := PageSlice(batch, -1); len(got) != 0 {
		t.Errorf("negative page returned %d labels", len(got))
	}
}

func TestSlotFor(t *testing.T) {
	page, slot := SlotFor(0)
	if page != 0 || slot != 0 {
		t.Errorf("SlotFor(0) = (%d, %d)", page, slot)
	}
	page, slot = SlotFor(11)
	if page != 0 || slot != 11 {
		t.Errorf("SlotFor(11) = (%d, %d)", page, slot)
	}
	page, slot = SlotFor(12)
	if page != 1 || slot != 0 {
		t.Errorf("SlotFor(12) = (%d, %d)", page, slot)
	}
}

package extract

import "testing"

func TestExtractLineItems(t *testing.T) {
	text := `Widget A 2 x 10,00 € = 20,00
Widget B 1 5.50 5.50
Gadget C 3 @ 7,25 € 21,75
`
	items := ExtractLineItems(text)
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3: %+v", len(items), items)
	}

	first := items[0]
	if *first.Description != "Widget A" {
		t.Errorf("Description = %q, want Widget A", *first.Description)
	}
	if *first.Quantity != 2.0 {
		t.Errorf("Quantity = %v, want 2", *first.Quantity)
	}
	if *first.UnitPrice != 10.0 {
		t.Errorf("UnitPrice = %v, want 10", *first.UnitPrice)
	}
	if *first.LineTotal != 20.0 {
		t.Errorf("LineTotal = %v, want 20", *first.LineTotal)
	}

	if *items[1].UnitPrice != 5.5 || *items[1].LineTotal != 5.5 {
		t.Errorf("items[1] = %+v, want 5.5/5.5", items[1])
	}
	if *items[2].Quantity != 3.0 || *items[2].LineTotal != 21.75 {
		t.Errorf("items[2] = %+v, want qty 3 total 21.75", items[2])
	}
}

func TestExtractLineItemsReturnsEmptySlice(t *testing.T) {
	items := ExtractLineItems("no tabular rows here")
	if items == nil {
		t.Fatalf("expected non-nil empty slice")
	}
	if len(items) != 0 {
		t.Fatalf("len(items) = %d, want 0", len(items))
	}
}

func TestExtractLineItemsFractionalQuantity(t *testing.T) {
	items := ExtractLineItems("Consulting 1,5 x 100,00 = 150,00\n")
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if *items[0].Quantity != 1.5 {
		t.Errorf("Quantity = %v, want 1.5", *items[0].Quantity)
	}
}

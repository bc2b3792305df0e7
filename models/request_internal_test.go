package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPartitionBranchLines(t *testing.T) {
	products := map[int]*Product{
		1: {ID: 1, Name: "Stapler", Description: "desk stapler", VendorId: 7, VendorName: "Acme"},
		2: {ID: 2, Name: "Tape", VendorId: 7, VendorName: "Acme"},
		3: {ID: 3, Name: "Glue", VendorId: 8, VendorName: "Bolt"},
	}
	details := []RequestDetail{
		{ProductId: 1, Quantity: decimal.NewFromInt(3)},
		{ProductId: 2, Quantity: decimal.NewFromInt(5)},
		{ProductId: 3, Quantity: decimal.NewFromInt(1)},
	}
	existing := map[int]bool{2: true}

	inserts, increments := partitionBranchLines(42, 9, details, products, existing)

	if len(inserts) != 2 {
		t.Fatalf("expected 2 inserts; got %d", len(inserts))
	}
	if len(increments) != 1 || increments[0].ProductId != 2 {
		t.Fatalf("expected product 2 as increment; got %+v", increments)
	}

	first := inserts[0]
	if first.BranchId != 42 || first.ProductId != 1 {
		t.Fatalf("unexpected first insert: %+v", first)
	}
	if first.ProductName != "Stapler" || first.VendorName != "Acme" || first.Description != "desk stapler" {
		t.Fatalf("insert must carry denormalized product metadata: %+v", first)
	}
	if first.Count.Cmp(decimal.NewFromInt(3)) != 0 {
		t.Fatalf("insert count must equal requested quantity; got %s", first.Count)
	}
	if first.CreatedBy != 9 || first.UpdatedBy != 9 {
		t.Fatalf("insert must carry the accepting user's audit stamps: %+v", first)
	}
	if inserts[1].ProductId != 3 || inserts[1].VendorName != "Bolt" {
		t.Fatalf("unexpected second insert: %+v", inserts[1])
	}
}

func TestPartitionBranchLinesAllExisting(t *testing.T) {
	products := map[int]*Product{1: {ID: 1, Name: "Stapler"}}
	details := []RequestDetail{{ProductId: 1, Quantity: decimal.NewFromInt(2)}}

	inserts, increments := partitionBranchLines(1, 9, details, products, map[int]bool{1: true})
	if len(inserts) != 0 || len(increments) != 1 {
		t.Fatalf("expected pure increment; got inserts=%d increments=%d", len(inserts), len(increments))
	}
}

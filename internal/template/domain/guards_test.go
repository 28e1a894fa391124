package domain

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/smallbiznis/paperpress/internal/design"
)

func TestCanEditRejectsSystemTemplates(t *testing.T) {
	if CanEdit(&Template{IsSystemTemplate: true}) {
		t.Fatalf("system templates must not be editable")
	}
	if !CanEdit(&Template{}) {
		t.Fatalf("regular templates must be editable")
	}
	if CanEdit(nil) {
		t.Fatalf("nil template must not be editable")
	}
}

func TestCanDelete(t *testing.T) {
	if CanDelete(&Template{IsSystemTemplate: true}, 5) {
		t.Fatalf("system templates must not be deletable")
	}
	if CanDelete(&Template{IsDefault: true}, 0) {
		t.Fatalf("the sole default must not be deletable")
	}
	if !CanDelete(&Template{IsDefault: true}, 1) {
		t.Fatalf("a default with a takeover candidate must be deletable")
	}
	if !CanDelete(&Template{}, 0) {
		t.Fatalf("a non-default template must be deletable")
	}
}

func TestDuplicateAggregateIsolation(t *testing.T) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	raw, err := design.Encode(design.Default())
	if err != nil {
		t.Fatalf("encode design: %v", err)
	}

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	source := &Template{
		ID:               node.Generate(),
		OrgID:            1,
		Name:             "Modern",
		IsDefault:        true,
		IsSystemTemplate: true,
		Design:           raw,
		UsageCount:       12,
		LastUsedAt:       &now,
	}

	copied := DuplicateAggregate(source, node.Generate(), 2, "Modern (Copy)", now)
	if copied.ID == source.ID {
		t.Fatalf("duplicate must get a fresh id")
	}
	if copied.OrgID != 2 {
		t.Fatalf("duplicate must belong to the destination org, got %d", copied.OrgID)
	}
	if copied.IsDefault || copied.IsSystemTemplate {
		t.Fatalf("duplicate must clear default and system flags")
	}
	if copied.UsageCount != 0 || copied.LastUsedAt != nil {
		t.Fatalf("duplicate must reset usage tracking")
	}
	if copied.Name != "Modern (Copy)" {
		t.Fatalf("unexpected duplicate name %q", copied.Name)
	}

	// Mutating the copy's design bytes must not touch the source.
	copied.Design[0] = '!'
	if source.Design[0] == '!' {
		t.Fatalf("duplicate shares design bytes with the source")
	}
}

package pagination

import "testing"

func TestNormalizeClamps(t *testing.T) {
	page, size := Normalize(0, 0)
	if page != DefaultPage || size != DefaultPageSize {
		t.Fatalf("expected defaults, got page=%d size=%d", page, size)
	}

	_, size = Normalize(1, 10000)
	if size != MaxPageSize {
		t.Fatalf("expected size capped at %d, got %d", MaxPageSize, size)
	}
}

func TestBuildTotalPages(t *testing.T) {
	info := Build(2, 20, 41)
	if info.TotalPages != 3 {
		t.Fatalf("expected 3 pages for 41 rows, got %d", info.TotalPages)
	}
	if info.Offset() != 20 {
		t.Fatalf("expected offset 20 for page 2, got %d", info.Offset())
	}
}

func TestBuildEmpty(t *testing.T) {
	info := Build(1, 20, 0)
	if info.TotalPages != 0 || info.Total != 0 {
		t.Fatalf("expected empty page info, got %+v", info)
	}
}

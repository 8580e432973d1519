package main

import (
	"strings"
	"testing"

	"librarian/internal/catalog"
)

func TestRenderStatusTableIncludesTotalRow(t *testing.T) {
	summary := catalog.Summary{
		Total: 3,
		Counts: map[catalog.Status]int{
			catalog.StatusPending:   2,
			catalog.StatusProcessed: 1,
		},
	}

	out := renderStatusTable(summary)
	for _, want := range []string{"Status", "Count", "pending", "processed", "total"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in table:\n%s", want, out)
		}
	}
}

func TestRenderErrorTableCapsErrorColumn(t *testing.T) {
	long := strings.Repeat("upload /Research/AI/paper.pdf: rate limited; ", 6)
	out := renderErrorTable([]*catalog.FileRecord{{
		RemoteID:  "id:1",
		FileName:  "paper.pdf",
		LastError: long,
	}})

	if !strings.Contains(out, "paper.pdf") {
		t.Fatalf("missing file name in table:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if len([]rune(line)) > 120 {
			t.Fatalf("line wider than the error column cap allows: %q", line)
		}
	}
}

package commonModels

import "testing"

func TestEntryID(t *testing.T) {
	m := ChunkMetadata{DocumentID: "42", ChunkIndex: 7}
	if got := m.EntryID(); got != "42_chunk_7" {
		t.Errorf("EntryID() = %q, want %q", got, "42_chunk_7")
	}
}

func TestParseQueryMode(t *testing.T) {
	tests := []struct {
		in   string
		want QueryMode
	}{
		{"strict", ModeStrict},
		{"balanced", ModeBalanced},
		{"open", ModeOpen},
		{"", ModeBalanced},
		{"not-a-mode", ModeBalanced},
		{"STRICT", ModeBalanced},
	}

	for _, tt := range tests {
		if got := ParseQueryMode(tt.in); got != tt.want {
			t.Errorf("ParseQueryMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

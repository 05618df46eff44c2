package config

import "testing"

func TestBlobKeys(t *testing.T) {
	tests := []struct {
		prefix string
		want   [3]string
	}{
		{"sodaubai", [3]string{"sodaubai:current-session", "sodaubai:entries", "sodaubai:accounts"}},
		{"", [3]string{"current-session", "entries", "accounts"}},
	}

	for _, tt := range tests {
		k := NewBlobKeyStruct(tt.prefix)
		got := [3]string{k.CurrentSessionKey(), k.EntriesKey(), k.AccountsKey()}
		if got != tt.want {
			t.Errorf("prefix %q: got %v, want %v", tt.prefix, got, tt.want)
		}
	}
}

func TestParseOrigins(t *testing.T) {
	if got := parseOrigins(""); got != nil {
		t.Fatalf("empty input should allow all, got %v", got)
	}
	got := parseOrigins(" https://a.example , ,https://b.example")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", got)
	}
}

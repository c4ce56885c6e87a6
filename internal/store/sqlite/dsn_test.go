package sqlite

import "testing"

func TestParseDSN(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "memory", input: "sqlite://:memory:", expected: ":memory:"},
		{name: "absolute path", input: "sqlite:///var/lib/mutt.db", expected: "/var/lib/mutt.db"},
		{name: "dot relative", input: "sqlite://./mutt.db", expected: "./mutt.db"},
		{name: "bare relative", input: "sqlite://data/mutt.db", expected: "./data/mutt.db"},
		{name: "escaped path with query", input: "sqlite://my%20kennel.db?cache=shared", expected: "./my kennel.db?cache=shared"},
		{name: "wrong scheme", input: "postgres://localhost/mutt", wantErr: true},
		{name: "empty path", input: "sqlite://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseDSN(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseDSN(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDSN(%q) unexpected error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("parseDSN(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWithConnParams(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "memory",
			input:    ":memory:",
			expected: ":memory:?_pragma=busy_timeout(30000)&_pragma=foreign_keys(1)",
		},
		{
			name:     "file",
			input:    "./mutt.db",
			expected: "./mutt.db?_pragma=busy_timeout(30000)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_txlock=immediate",
		},
		{
			name:     "file with query",
			input:    "./mutt.db?cache=shared",
			expected: "./mutt.db?cache=shared&_pragma=busy_timeout(30000)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_txlock=immediate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := withConnParams(tt.input); got != tt.expected {
				t.Errorf("withConnParams(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestParseRunID tests run ID parsing
func TestParseRunID(t *testing.T) {
	generated := NewRunID()

	tests := []struct {
		input    string
		expected RunID
		hasError bool
	}{
		{generated.String(), generated, false},
		{"  " + generated.String() + " ", generated, false},
		{"run-123", "", true},
		{"", "", true},
	}

	for _, test := range tests {
		result, err := ParseRunID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

func TestTimestampRunStamp(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, time.March, 5, 9, 7, 3, 999, time.Local))
	if got := ts.RunStamp(); got != "20240305_090703" {
		t.Errorf("Expected 20240305_090703, got %s", got)
	}
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.txt")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}

	h, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	// sha256("abc")
	want := Hash("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")
	if h != want {
		t.Errorf("Expected %s, got %s", want, h)
	}
	if h != NewHash([]byte("abc")) {
		t.Error("HashFile and NewHash disagree")
	}
	if h.Short() != "ba7816bf8f01" {
		t.Errorf("Unexpected short hash %s", h.Short())
	}

	if _, err := HashFile(path + ".missing"); err == nil {
		t.Error("Expected error for missing file")
	}
}

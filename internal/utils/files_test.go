package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSafeWriteFile_CreatesDirAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "streaks.json")
	if err := SafeWriteFile(path, []byte("one")); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	if err := SafeWriteFile(path, []byte("two")); err != nil {
		t.Fatalf("SafeWriteFile overwrite: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "two" {
		t.Fatalf("content = %q, err = %v", b, err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"top_n": 3})
	if err != nil {
		t.Fatalf("PrettyJSON: %v", err)
	}
	if !strings.Contains(string(b), "\n  \"top_n\": 3") {
		t.Fatalf("got %s", b)
	}
}

func TestParseDelimiter(t *testing.T) {
	cases := map[string]rune{"": 0, ",": ',', ";": ';', `\t`: '\t', "tab": '\t', "|": '|'}
	for in, want := range cases {
		got, err := ParseDelimiter(in)
		if err != nil || got != want {
			t.Errorf("ParseDelimiter(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseDelimiter(";;"); err == nil {
		t.Errorf("expected error for multi-char delimiter")
	}
}

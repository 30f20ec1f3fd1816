// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadTopicsFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "topics.yaml")
	content := "topics:\n  - machine learning\n  - \"  cs.CL \"\n  - \"\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	topics, err := ReadTopicsFile(path)
	if err != nil {
		t.Fatalf("ReadTopicsFile: %v", err)
	}
	want := []string{"machine learning", "cs.CL"}
	if !reflect.DeepEqual(topics, want) {
		t.Errorf("topics = %v, want %v", topics, want)
	}
}

func TestReadTopicsFileErrors(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := ReadTopicsFile(filepath.Join(tmpDir, "absent.yaml")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})

	t.Run("no topics", func(t *testing.T) {
		path := filepath.Join(tmpDir, "empty.yaml")
		if err := os.WriteFile(path, []byte("topics: []\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadTopicsFile(path); err == nil {
			t.Fatal("expected error for empty topic list")
		}
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(tmpDir, "bad.yaml")
		if err := os.WriteFile(path, []byte("topics: [unclosed"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadTopicsFile(path); err == nil {
			t.Fatal("expected error for malformed YAML")
		}
	})
}

func TestSplitTopics(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" llm , agents ", []string{"llm", "agents"}},
		{"single", []string{"single"}},
		{"", nil},
		{" , ,", nil},
	}

	for _, tt := range tests {
		if got := SplitTopics(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitTopics(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

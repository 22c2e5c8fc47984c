package parsing

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSkillName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Golang to Go", "Golang", "Go"},
		{"golang to Go", "golang", "Go"},
		{"GOLANG to Go", "GOLANG", "Go"},
		{"go lang to Go", "go lang", "Go"},
		{"JavaScript normalization", "javascript", "JavaScript"},
		{"JS to JavaScript uppercase", "JS", "JavaScript"},
		{"TS to TypeScript", "ts", "TypeScript"},
		{"K8s to Kubernetes", "k8s", "Kubernetes"},
		{"react.js to React", "react.js", "React"},
		{"nodejs to Node.js", "nodejs", "Node.js"},
		{"postgres to PostgreSQL", "Postgres", "PostgreSQL"},
		{"python to Python", "python", "Python"},
		{"PYTHON to Python", "PYTHON", "Python"},
		{"AWS stays an acronym", "AWS", "AWS"},
		{"SQL stays an acronym", "SQL", "SQL"},
		{"Empty string", "", ""},
		{"Whitespace only", "   ", ""},
		{"Multi-word stays as-is", "Distributed Systems", "Distributed Systems"},
		{"lowercase multi-word stays as-is", "distributed systems", "distributed systems"},
		{"Mixed case single word", "gRPC", "gRPC"},
		{"Digits only", "2024", "2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSkillName(tt.input))
		})
	}
}

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"comma separated", "go, kubernetes,AWS", []string{"Go", "Kubernetes", "AWS"}},
		{"newlines and semicolons", "golang\nk8s;\r\npostgres\n", []string{"Go", "Kubernetes", "PostgreSQL"}},
		{"dedupes after normalization", "Go, golang, GO", []string{"Go"}},
		{"blank entries dropped", " , ,\n", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseKeywords(tt.input))
		})
	}
}

func TestReadKeywordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.txt")
	require.NoError(t, os.WriteFile(path, []byte("go\nkafka\n"), 0o644))

	keywords, err := ReadKeywordsFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Kafka"}, keywords)

	_, err = ReadKeywordsFile(filepath.Join(t.TempDir(), "missing.txt"))
	var readErr *FileReadError
	assert.True(t, errors.As(err, &readErr))
}

func TestMergeKeywords(t *testing.T) {
	assert.Equal(t,
		[]string{"Go", "Kafka", "SQL"},
		MergeKeywords([]string{"Go", "Kafka"}, []string{"go", "SQL", ""}))
	assert.Nil(t, MergeKeywords())
}

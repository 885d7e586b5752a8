package lexer

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestBOMStripping(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected []byte
	}{
		{"with_bom", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, []byte("hi")},
		{"without_bom", []byte("hi"), []byte("hi")},
		{"empty_with_bom", []byte{0xEF, 0xBB, 0xBF}, []byte{}},
		{"partial_bom", []byte{0xEF, 0xBB, 'h', 'i'}, []byte{0xEF, 0xBB, 'h', 'i'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.input)
			if !bytes.Equal(result, tt.expected) {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestNFCNormalization(t *testing.T) {
	nfd := "café"
	result := string(Normalize([]byte(nfd)))
	if result != "café" {
		t.Errorf("expected café, got %q", result)
	}
	if !norm.NFC.IsNormalString(result) {
		t.Errorf("result is not in NFC form")
	}
}

func TestCanaryDeterministicTokenization(t *testing.T) {
	variants := []string{
		"let café = 42",
		strings.ReplaceAll("let café = 42", "\n", "\r\n"),
		"let café = 42",
		"﻿let café = 42",
	}

	var baseline []TokenType
	for i, v := range variants {
		normalized := Normalize([]byte(v))
		l := New(string(normalized), "test.bsh")
		var types []TokenType
		for {
			tok := l.NextToken()
			types = append(types, tok.Type)
			if tok.Type == EOF {
				break
			}
		}
		if i == 0 {
			baseline = types
			continue
		}
		if len(types) != len(baseline) {
			t.Fatalf("variant %d token count mismatch: %d vs %d", i, len(types), len(baseline))
		}
		for j := range types {
			if types[j] != baseline[j] {
				t.Errorf("variant %d token %d mismatch: %v vs %v", i, j, types[j], baseline[j])
			}
		}
	}
}

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TOKEN_SECRET", "super-secret-key-13")
}

func TestRun_IssueThenValidate(t *testing.T) {
	setupEnv(t)

	// setup env
	var issued bytes.Buffer
	if err := run([]string{"issue", "-mode", "nested"}, &issued, &bytes.Buffer{}); err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	token := strings.TrimSpace(issued.String())
	if strings.Count(token, ".") != 2 {
		t.Fatalf("unexpected token %q", token)
	}

	// an issued token validates and reports its nesting
	var out bytes.Buffer
	if err := run([]string{"validate", token}, &out, &bytes.Buffer{}); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out.String(), `"nesting": 1`) {
		t.Errorf("output missing nesting: %s", out.String())
	}
	if !strings.Contains(out.String(), `"iss": "Server-KN-P-221"`) {
		t.Errorf("output missing claims: %s", out.String())
	}
}

func TestRun_ValidateRejected(t *testing.T) {
	setupEnv(t)

	// setup env
	var issued bytes.Buffer
	if err := run([]string{"issue", "-mode", "nested_expired"}, &issued, &bytes.Buffer{}); err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// rejection prints the reason chain
	var stderr bytes.Buffer
	err := run([]string{"validate", strings.TrimSpace(issued.String())}, &bytes.Buffer{}, &stderr)
	if !errors.Is(err, errRejected) {
		t.Fatalf("expected errRejected, got %v", err)
	}
	if !strings.Contains(stderr.String(), "nested_token_invalid: token_expired") {
		t.Errorf("stderr = %s", stderr.String())
	}
}

func TestRun_DefaultModeName(t *testing.T) {
	setupEnv(t)

	if err := run([]string{"issue", "-mode", "default"}, &bytes.Buffer{}, &bytes.Buffer{}); err != nil {
		t.Errorf("issue failed: %v", err)
	}
}

func TestRun_Errors(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"frobnicate"}},
		{"unknown mode", []string{"issue", "-mode", "sideways"}},
		{"validate without token", []string{"validate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(tt.args, &bytes.Buffer{}, &bytes.Buffer{}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

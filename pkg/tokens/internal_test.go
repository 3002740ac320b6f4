package tokens

import (
	"encoding/json"
	"strings"
	"testing"
)

// Tests for segment encoding

func TestDecodeSegment_Padding(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"no padding needed", "abc"},
		{"one pad char", "ab"},
		{"two pad chars", "a"},
		{"url alphabet", "\xfb\xff\xfe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := EncodeSegment([]byte(tt.data))
			if strings.Contains(encoded, "=") {
				t.Fatalf("encoded segment %q contains padding", encoded)
			}

			decoded, err := DecodeSegment(encoded)
			if err != nil {
				t.Fatalf("DecodeSegment failed: %v", err)
			}
			if string(decoded) != tt.data {
				t.Errorf("decoded = %q, want %q", decoded, tt.data)
			}
		})
	}
}

func TestDecodeSegment_Invalid(t *testing.T) {
	t.Parallel()

	// a single leftover character can never be valid base64
	if _, err := DecodeSegment("A"); err == nil {
		t.Error("expected error for length 1 segment")
	}

	// standard alphabet is rejected
	if _, err := DecodeSegment("ab+/"); err == nil {
		t.Error("expected error for standard alphabet")
	}
}

func TestDecodeText_InvalidUTF8(t *testing.T) {
	t.Parallel()

	encoded := EncodeSegment([]byte{0xff, 0xfe})
	if _, err := DecodeText(encoded); err != errNotBase64URLText {
		t.Errorf("err = %v, want errNotBase64URLText", err)
	}
}

// Tests for JSON helpers

func TestDecodeObject(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"object", `{"a":1}`, false},
		{"object with whitespace", " {\"a\":1}\n", false},
		{"empty object", `{}`, false},
		{"null", `null`, true},
		{"array", `[1,2]`, true},
		{"number", `42`, true},
		{"trailing object", `{}{}`, true},
		{"trailing garbage", `{"a":1} x`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeObject(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("decodeObject(%q) err = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
		})
	}
}

func TestDecodeObject_KeepsNumbers(t *testing.T) {
	t.Parallel()

	obj, err := decodeObject(`{"exp":1760400000,"f":1.5}`)
	if err != nil {
		t.Fatalf("decodeObject failed: %v", err)
	}
	if _, ok := obj["exp"].(json.Number); !ok {
		t.Errorf("exp is %T, want json.Number", obj["exp"])
	}
}

func TestCompactJSON_NoHTMLEscape(t *testing.T) {
	t.Parallel()

	out, err := compactJSON(map[string]any{"b": "<&>", "a": 1})
	if err != nil {
		t.Fatalf("compactJSON failed: %v", err)
	}
	if string(out) != `{"a":1,"b":"<&>"}` {
		t.Errorf("compactJSON = %s", out)
	}
}

func TestIntegerClaim(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		value  any
		want   int64
		wantOK bool
	}{
		{"json integer", json.Number("1760400000"), 1760400000, true},
		{"negative", json.Number("-5"), -5, true},
		{"json fraction", json.Number("1.5"), 0, false},
		{"json exponent", json.Number("1e9"), 0, false},
		{"json integral fraction", json.Number("10.0"), 0, false},
		{"overflow", json.Number("99999999999999999999"), 0, false},
		{"int64", int64(7), 7, true},
		{"int", 7, 7, true},
		{"float64", 7.0, 0, false},
		{"string", "7", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := integerClaim(tt.value)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("integerClaim(%v) = (%d, %v), want (%d, %v)", tt.value, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// Tests for the claim policy

func TestValidateClaims(t *testing.T) {
	t.Parallel()
	base := func() Claims {
		return Claims{
			"sub": "296c7f07-ba1a-11f0-83b6-62517600596c",
			"iss": ExpectedIssuer,
		}
	}
	tests := []struct {
		name   string
		modify func(Claims)
		want   Reason
	}{
		{"name only", func(c Claims) { c["name"] = "Ann" }, ""},
		{"email only", func(c Claims) { c["email"] = "ann@example.com" }, ""},
		{"name and email", func(c Claims) { c["name"] = "Ann"; c["email"] = "ann@example.com" }, ""},
		{"trimmed email", func(c Claims) { c["email"] = "  ann@example.com " }, ""},
		{"uppercase uuid", func(c Claims) { c["sub"] = "296C7F07-BA1A-11F0-83B6-62517600596C"; c["name"] = "Ann" }, ""},
		{"blank email with name", func(c Claims) { c["name"] = "Ann"; c["email"] = "   " }, ""},
		{"name only skips email check", func(c Claims) { c["name"] = "Ann"; c["email"] = 42 }, ""},
		{"uuid without dashes", func(c Claims) { c["sub"] = "296c7f07ba1a11f083b662517600596c"; c["name"] = "Ann" }, ReasonInvalidSub},
		{"uuid with braces", func(c Claims) { c["sub"] = "{296c7f07-ba1a-11f0-83b6-62517600596c}"; c["name"] = "Ann" }, ReasonInvalidSub},
		{"sub not string", func(c Claims) { c["sub"] = 12; c["name"] = "Ann" }, ReasonInvalidSub},
		{"sub missing", func(c Claims) { delete(c, "sub"); c["name"] = "Ann" }, ReasonInvalidSub},
		{"iss wrong case", func(c Claims) { c["iss"] = "server-kn-p-221"; c["name"] = "Ann" }, ReasonInvalidIss},
		{"iss trailing space", func(c Claims) { c["iss"] = ExpectedIssuer + " "; c["name"] = "Ann" }, ReasonInvalidIss},
		{"iss missing", func(c Claims) { delete(c, "iss"); c["name"] = "Ann" }, ReasonInvalidIss},
		{"no identity", func(c Claims) {}, ReasonMissingNameOrEmail},
		{"blank name", func(c Claims) { c["name"] = " \t " }, ReasonMissingNameOrEmail},
		{"name not string", func(c Claims) { c["name"] = true }, ReasonMissingNameOrEmail},
		{"blank name bad email", func(c Claims) { c["name"] = "  "; c["email"] = "nope" }, ReasonInvalidEmailFormat},
		{"email short tld", func(c Claims) { c["email"] = "ann@example.c" }, ReasonInvalidEmailFormat},
		{"email no at", func(c Claims) { c["email"] = "ann.example.com" }, ReasonInvalidEmailFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := base()
			tt.modify(claims)

			err := ValidateClaims(claims)
			switch {
			case tt.want == "" && err != nil:
				t.Errorf("unexpected rejection: %v", err)
			case tt.want != "" && err == nil:
				t.Errorf("expected %s, got nil", tt.want)
			case tt.want != "" && err.Reason != tt.want:
				t.Errorf("reason = %s, want %s", err.Reason, tt.want)
			}
		})
	}
}

// Tests for error chains

func TestError_Chain(t *testing.T) {
	t.Parallel()

	err := &Error{
		Reason: ReasonNestedTokenInvalid,
		Inner:  rejectf(ReasonMalformedSegments, "found %d parts", 2),
	}

	if got := err.Error(); got != "nested_token_invalid: malformed_segments (found 2 parts)" {
		t.Errorf("Error() = %q", got)
	}
	if got := err.Root().Reason; got != ReasonMalformedSegments {
		t.Errorf("Root().Reason = %s", got)
	}
	want := "nested JWT invalid: token format invalid (expected 3 parts: header.payload.signature) 'found 2 parts'"
	if got := err.Describe(); got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
	if !err.Is(ErrNestedTokenInvalid) || err.Is(ErrTokenExpired) {
		t.Error("Is should match by reason only")
	}
}

// Tests for structure checks

func TestValidateStructure(t *testing.T) {
	t.Parallel()

	h, p, s, err := validateStructure("a.b.c")
	if err != nil || h != "a" || p != "b" || s != "c" {
		t.Errorf("validateStructure(a.b.c) = (%q, %q, %q, %v)", h, p, s, err)
	}

	_, _, _, err = validateStructure("a..b.c")
	if err == nil || err.Detail != "found 4 parts" {
		t.Errorf("validateStructure(a..b.c) err = %v", err)
	}
}

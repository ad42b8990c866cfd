package claims

import (
	"encoding/base64"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lamesa/ordering-gateway/internal/core/domain"
)

// buildToken assembles an unsigned JWT-shaped token from a raw payload.
func buildToken(payload string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return header + "." + body + ".signature-not-checked"
}

func TestReader_DecodeExtractsRoleSubjectEmail(t *testing.T) {
	r := NewReader(zerolog.Nop())

	token := buildToken(`{"role":"ADMIN","email":"ana@example.com","sub":"user-42"}`)
	got, ok := r.Decode(token)
	if !ok {
		t.Fatalf("expected decode to succeed")
	}
	want := domain.Claims{Role: "ADMIN", Subject: "user-42", Email: "ana@example.com"}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestReader_DecodeNeverFailsHard(t *testing.T) {
	r := NewReader(zerolog.Nop())

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no dots", "not-a-token"},
		{"two segments", "abc.def"},
		{"broken base64", "a!b.c!d.e!f"},
		{"invalid json payload", buildToken(`{"role":`)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := r.Decode(tc.token)
			if ok {
				t.Fatalf("expected decode failure, got %+v", got)
			}
			if got != (domain.Claims{}) {
				t.Fatalf("expected zero claims, got %+v", got)
			}
		})
	}
}

func TestReader_DecodeMissingRoleStillSucceeds(t *testing.T) {
	r := NewReader(zerolog.Nop())

	got, ok := r.Decode(buildToken(`{"sub":"user-1"}`))
	if !ok {
		t.Fatalf("expected decode to succeed")
	}
	if got.Role != "" {
		t.Fatalf("expected empty role, got %q", got.Role)
	}
}

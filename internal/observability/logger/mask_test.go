package logger

import (
	"net/http"
	"testing"
)

func TestMaskAuthorizationKeepsScheme(t *testing.T) {
	if got, want := MaskAuthorization("Bearer tok_live_99887766"), "Bearer ****7766"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got, want := MaskAuthorization("rawcredential"), "****tial"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMaskCookiePreservesNames(t *testing.T) {
	got := MaskCookie("sid=abcdef1234; theme=dark")
	want := "sid=****1234; theme=****dark"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMaskHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer tok_12345678")
	headers.Set("X-Org-ID", "12345")

	masked := MaskHeaders(headers)
	if masked["Authorization"] != "Bearer ****5678" {
		t.Fatalf("expected masked authorization, got %q", masked["Authorization"])
	}
	if masked["X-Org-Id"] != "12345" {
		t.Fatalf("expected org header untouched, got %q", masked["X-Org-Id"])
	}
}

func TestMaskJSONDeepCopies(t *testing.T) {
	input := map[string]any{
		"password": "hunter2",
		"template": map[string]any{
			"name":      "Modern",
			"api_key":   "key_12345678",
			"usage_cnt": 3,
		},
	}
	masked := MaskJSON(input)
	if masked["password"] != "****ter2" {
		t.Fatalf("expected masked password, got %v", masked["password"])
	}
	nested, ok := masked["template"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map")
	}
	if nested["api_key"] != "****5678" {
		t.Fatalf("expected masked api_key, got %v", nested["api_key"])
	}
	if nested["name"] != "Modern" || nested["usage_cnt"] != 3 {
		t.Fatalf("expected non-sensitive values untouched, got %v", nested)
	}
	if input["template"].(map[string]any)["api_key"] != "key_12345678" {
		t.Fatalf("masking mutated the input map")
	}
}

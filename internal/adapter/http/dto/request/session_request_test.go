package request

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCreateSessionRequest_ResolveAmount(t *testing.T) {
	cases := []struct {
		name      string
		amount    string
		wantMinor int64
		wantErr   bool
	}{
		{"decimal", "79.90", 7990, false},
		{"integer major", "80", 8000, false},
		{"zero", "0", 0, true},
		{"negative", "-1.5", 0, true},
		{"not a number", "abc", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := CreateSessionRequest{Name: "Ana", Amount: json.Number(tc.amount)}
			got, err := r.ResolveAmount()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Fatalf("expected ErrInvalidAmount, got %v", err)
				}
				return
			}
			if err != nil || got.MinorUnits() != tc.wantMinor {
				t.Fatalf("unexpected amount %v err=%v", got, err)
			}
		})
	}
}

func TestProxyChargeRequest_ResolveDescription(t *testing.T) {
	r := ProxyChargeRequest{Items: []ProxyChargeItem{{Title: " "}, {Title: "Plano anual"}}}
	if got := r.ResolveDescription(); got != "Plano anual" {
		t.Fatalf("unexpected description %q", got)
	}
	if got := (ProxyChargeRequest{}).ResolveDescription(); got != "" {
		t.Fatalf("expected empty description, got %q", got)
	}
}

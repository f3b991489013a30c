package payments

import (
	"encoding/json"
	"strings"
	"testing"

	"pix_checkout/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestNormalizeProviderAmount(t *testing.T) {
	cases := []struct {
		name      string
		raw       any
		wantOK    bool
		wantUnit  entities.AmountUnit
		wantMinor int64
	}{
		{"minor string", "7990", true, entities.AmountUnitMinor, 7990},
		{"minor number", float64(7990), true, entities.AmountUnitMinor, 7990},
		{"major string", "79.90", true, entities.AmountUnitMajor, 7990},
		{"major number", 79.9, true, entities.AmountUnitMajor, 7990},
		{"brazilian format", "1.234,56", true, entities.AmountUnitMajor, 123456},
		{"nil", nil, false, "", 0},
		{"garbage", "abc", false, "", 0},
		{"negative", "-10", false, "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, ok := NormalizeProviderAmount(tc.raw, nil)
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v", tc.wantOK, ok)
			}
			if !ok {
				return
			}
			if a.Unit != tc.wantUnit || a.MinorUnits() != tc.wantMinor {
				t.Fatalf("unexpected amount %+v (minor=%d)", a, a.MinorUnits())
			}
		})
	}
}

func TestNormalizeProviderAmountAgainstKnownAmount(t *testing.T) {
	known := entities.NewMajorAmount(decimal.RequireFromString("80.00"))
	cases := []struct {
		name      string
		raw       any
		wantUnit  entities.AmountUnit
		wantMinor int64
	}{
		{"integer equal to the major value", json.Number("80"), entities.AmountUnitMajor, 8000},
		{"integer equal to the minor value", json.Number("8000"), entities.AmountUnitMinor, 8000},
		{"integer closer as major", "81", entities.AmountUnitMajor, 8100},
		{"integer closer as minor", "7990", entities.AmountUnitMinor, 7990},
		{"decimal is always major", "0.80", entities.AmountUnitMajor, 80},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, ok := NormalizeProviderAmount(tc.raw, &known)
			if !ok {
				t.Fatalf("expected a reading")
			}
			if a.Unit != tc.wantUnit || a.MinorUnits() != tc.wantMinor {
				t.Fatalf("unexpected amount %+v (minor=%d)", a, a.MinorUnits())
			}
		})
	}
}

func TestExtractPixFields(t *testing.T) {
	cases := []struct {
		name     string
		payload  map[string]any
		wantCode string
		wantQR   string
	}{
		{"top level camel", map[string]any{"pixCode": "A", "pixQrCode": "https://q/a.png"}, "A", "https://q/a.png"},
		{"top level snake", map[string]any{"pix_code": "B"}, "B", ""},
		{"nested pix code", map[string]any{"pix": map[string]any{"code": "C", "qr_code_image": "iVBORw0"}}, "C", "data:image/png;base64,iVBORw0"},
		{"top level wins over nested", map[string]any{"copy_paste": "D", "pix": map[string]any{"code": "E"}}, "D", ""},
		{"data envelope", map[string]any{"data": map[string]any{"pix": map[string]any{"pixCode": "F"}}}, "F", ""},
		{"qrcode key", map[string]any{"pix": map[string]any{"code": "G", "qrcode": "https://q/g.png"}}, "G", "https://q/g.png"},
		{"qr_code holding an image", map[string]any{"pixCode": "H", "qr_code": "iVBORw1"}, "H", "data:image/png;base64,iVBORw1"},
		{"qr_code holding the copy-paste payload", map[string]any{"pixCode": "000201I", "qr_code": "000201I"}, "000201I", ""},
		{"nothing", map[string]any{"pix": "not-an-object"}, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, qr := extractPixFields(tc.payload)
			if code != tc.wantCode || qr != tc.wantQR {
				t.Fatalf("expected (%q,%q), got (%q,%q)", tc.wantCode, tc.wantQR, code, qr)
			}
		})
	}
}

func TestNormalizeProviderStatus(t *testing.T) {
	for raw, want := range map[string]entities.SessionStatus{
		"APPROVED":  entities.SessionStatusApproved,
		"paid":      entities.SessionStatusApproved,
		"Completed": entities.SessionStatusApproved,
		"refused":   entities.SessionStatusRejected,
		"CANCELED":  entities.SessionStatusRejected,
		"expired":   entities.SessionStatusRejected,
		"waiting":   entities.SessionStatusPending,
		"":          entities.SessionStatusPending,
	} {
		if got := normalizeProviderStatus(raw); got != want {
			t.Fatalf("%q: expected %s, got %s", raw, want, got)
		}
	}
}

func TestEnsureCustomerDefaults(t *testing.T) {
	t.Run("synthetic values are deterministic and flagged", func(t *testing.T) {
		a := EnsureCustomerDefaults(entities.CustomerSnapshot{Name: "Ana Lima"})
		b := EnsureCustomerDefaults(entities.CustomerSnapshot{Name: "  Ana Lima "})
		if a != b {
			t.Fatalf("expected deterministic defaults: %+v vs %+v", a, b)
		}
		if !a.SyntheticDocument || !a.SyntheticContact {
			t.Fatalf("expected synthetic flags: %+v", a)
		}
		if !IsValidCPF(a.Document) {
			t.Fatalf("synthetic document is not a valid CPF: %s", a.Document)
		}
		if !strings.HasPrefix(a.Email, "ana.lima.") || !strings.HasSuffix(a.Email, "@"+syntheticEmailDomain) {
			t.Fatalf("unexpected email: %s", a.Email)
		}
		if len(a.Phone) != 11 {
			t.Fatalf("unexpected phone: %s", a.Phone)
		}
	})

	t.Run("provided values are kept", func(t *testing.T) {
		c := EnsureCustomerDefaults(entities.CustomerSnapshot{
			Name: "Ana Lima", Document: "123.456.789-00", Email: "ana@example.com", Phone: "(11) 98888-7777",
		})
		if c.Document != "12345678900" || c.Email != "ana@example.com" || c.Phone != "11988887777" {
			t.Fatalf("unexpected customer: %+v", c)
		}
		if c.SyntheticDocument || c.SyntheticContact {
			t.Fatalf("nothing should be synthetic: %+v", c)
		}
	})

	t.Run("cpf validation", func(t *testing.T) {
		if !IsValidCPF("529.982.247-25") {
			t.Fatalf("expected known valid CPF")
		}
		if IsValidCPF("111.111.111-11") || IsValidCPF("529.982.247-24") || IsValidCPF("123") {
			t.Fatalf("expected invalid CPFs to be rejected")
		}
	})
}

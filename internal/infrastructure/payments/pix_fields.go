package payments

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	defaultQRRenderURL = "https://api.qrserver.com/v1/create-qr-code/?size=300x300&data="
	emvPayloadPrefix   = "000201"
)

var (
	pixCodeKeys = []string{"pixCode", "copy_paste", "code", "pix_code"}
	pixQRKeys   = []string{"pixQrCode", "qr_code_image", "qrCodeImage", "qr_code", "qrcode", "pix_qr_code", "qr_code_url", "qrcode_url"}
	providerIDs = []string{"id", "transactionId", "transaction_id", "paymentId", "payment_id"}
)

// extractPixFields walks the known response shapes in order: top level, "pix",
// then the same two under a "data" envelope.
func extractPixFields(payload map[string]any) (code, qr string) {
	for _, scope := range pixScopes(payload) {
		if code == "" {
			code = firstString(scope, pixCodeKeys...)
		}
		if qr == "" {
			qr = firstString(scope, pixQRKeys...)
		}
	}
	return code, normalizeQRImage(qr)
}

func pixScopes(payload map[string]any) []map[string]any {
	scopes := []map[string]any{payload}
	if pix, ok := payload["pix"].(map[string]any); ok {
		scopes = append(scopes, pix)
	}
	if data, ok := payload["data"].(map[string]any); ok {
		scopes = append(scopes, data)
		if pix, ok := data["pix"].(map[string]any); ok {
			scopes = append(scopes, pix)
		}
	}
	return scopes
}

func unwrapEnvelope(payload map[string]any) map[string]any {
	if data, ok := payload["data"].(map[string]any); ok {
		return data
	}
	return payload
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case map[string]any, []any:
			continue
		default:
			s = fmt.Sprint(t)
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

func firstValue(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// normalizeQRImage keeps URLs and data URIs; a bare base64 payload is wrapped as PNG.
// An EMV copy-paste payload under a QR key is not an image and is dropped.
func normalizeQRImage(qr string) string {
	switch {
	case qr == "", strings.HasPrefix(qr, emvPayloadPrefix):
		return ""
	case strings.HasPrefix(qr, "http://"), strings.HasPrefix(qr, "https://"), strings.HasPrefix(qr, "data:"):
		return qr
	default:
		return "data:image/png;base64," + qr
	}
}

// deriveQRCodeURL renders the copy-paste code through a QR image service.
func deriveQRCodeURL(renderURL, code string) string {
	if renderURL == "" {
		renderURL = defaultQRRenderURL
	}
	return renderURL + url.QueryEscape(code)
}

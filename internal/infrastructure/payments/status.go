package payments

import (
	"strings"
	"time"

	"pix_checkout/internal/domain/entities"
)

// normalizeProviderStatus folds the vocabularies seen across providers into the
// three session states. Anything unknown stays PENDING.
func normalizeProviderStatus(raw string) entities.SessionStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "approved", "paid", "completed", "confirmed", "accredited", "settled":
		return entities.SessionStatusApproved
	case "rejected", "refused", "denied", "failed", "cancelled", "canceled", "expired", "refunded", "charged_back", "chargeback":
		return entities.SessionStatusRejected
	default:
		return entities.SessionStatusPending
	}
}

var providerTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func parseProviderTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range providerTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

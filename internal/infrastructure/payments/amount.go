package payments

import (
	"fmt"
	"strconv"
	"strings"

	"pix_checkout/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// NormalizeProviderAmount reads an amount the provider sent in an unknown unit.
//
// Values written with a decimal separator ("79.90", "79,90", 79.9) are major units.
// Integers ("7990", 7990, "80") go through entities.ResolveIntegerAmount against the
// known amount, if any. The result always carries its unit.
func NormalizeProviderAmount(raw any, known *entities.Amount) (entities.Amount, bool) {
	var s string
	switch v := raw.(type) {
	case nil:
		return entities.Amount{}, false
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case string:
		s = v
	default:
		s = fmt.Sprint(v)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return entities.Amount{}, false
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return entities.Amount{}, false
	}
	if strings.Contains(s, ".") {
		return entities.NewMajorAmount(d), true
	}
	return entities.ResolveIntegerAmount(d.IntPart(), known), true
}

package payments

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"unicode"

	"pix_checkout/internal/domain/entities"
)

const syntheticEmailDomain = "synthetic.invalid"

// EnsureCustomerDefaults fills a missing document or contact with deterministic
// values derived from the customer name. Generated values are flagged on the snapshot.
func EnsureCustomerDefaults(c entities.CustomerSnapshot) entities.CustomerSnapshot {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	seed := sha256.Sum256([]byte(strings.ToLower(c.Name)))

	if doc := onlyDigits(c.Document); doc != "" {
		c.Document = doc
	} else {
		c.Document = syntheticCPF(seed)
		c.SyntheticDocument = true
	}

	if c.Email == "" {
		c.Email = fmt.Sprintf("%s.%x@%s", slugify(c.Name), seed[:3], syntheticEmailDomain)
		c.SyntheticContact = true
	}

	if phone := onlyDigits(c.Phone); phone != "" {
		c.Phone = phone
	} else {
		c.Phone = syntheticPhone(seed)
		c.SyntheticContact = true
	}
	return c
}

func syntheticCPF(seed [32]byte) string {
	d := make([]int, 11)
	same := true
	for i := 0; i < 9; i++ {
		d[i] = int(seed[i]) % 10
		if d[i] != d[0] {
			same = false
		}
	}
	// repeated-digit CPFs are rejected by every validator
	if same {
		d[8] = (d[8] + 1) % 10
	}
	d[9] = cpfCheckDigit(d[:9])
	d[10] = cpfCheckDigit(d[:10])

	var b strings.Builder
	for _, v := range d {
		b.WriteByte(byte('0' + v))
	}
	return b.String()
}

func cpfCheckDigit(digits []int) int {
	weight := len(digits) + 1
	sum := 0
	for i, v := range digits {
		sum += v * (weight - i)
	}
	r := (sum * 10) % 11
	if r == 10 {
		return 0
	}
	return r
}

// IsValidCPF checks length, repeated digits and both check digits.
func IsValidCPF(doc string) bool {
	doc = onlyDigits(doc)
	if len(doc) != 11 || strings.Count(doc, doc[:1]) == 11 {
		return false
	}
	d := make([]int, 11)
	for i, r := range doc {
		d[i] = int(r - '0')
	}
	return cpfCheckDigit(d[:9]) == d[9] && cpfCheckDigit(d[:10]) == d[10]
}

func syntheticPhone(seed [32]byte) string {
	var b strings.Builder
	b.WriteString("119")
	for i := 9; i < 17; i++ {
		b.WriteByte(byte('0' + int(seed[i])%10))
	}
	return b.String()
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func slugify(name string) string {
	parts := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !unicode.IsDigit(r)
	})
	if len(parts) == 0 {
		return "customer"
	}
	return strings.Join(parts, ".")
}

package request

import "strings"

type ProxyChargeItem struct {
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Tangible  bool   `json:"tangible"`
}

// ProxyChargeRequest is the provider wire format accepted by the mediating proxy.
// Amount is in minor units.
type ProxyChargeRequest struct {
	Name          string            `json:"name" binding:"required"`
	Email         string            `json:"email"`
	CPF           string            `json:"cpf"`
	Phone         string            `json:"phone"`
	PaymentMethod string            `json:"paymentMethod"`
	Amount        int64             `json:"amount" binding:"required,gt=0"`
	Items         []ProxyChargeItem `json:"items"`
}

func (r ProxyChargeRequest) ResolveDescription() string {
	for _, it := range r.Items {
		if t := strings.TrimSpace(it.Title); t != "" {
			return t
		}
	}
	return ""
}

package usecase

import (
	"pix_checkout/internal/usecase/interfaces"
)

// CallPath names the network route a gateway call takes.
type CallPath string

const (
	// CallPathDirect calls the provider with credentials scoped to this deployment.
	CallPathDirect CallPath = "direct"
	// CallPathMediated goes through the server-held secret, locally or via a proxy.
	CallPathMediated CallPath = "mediated"
)

// AttemptOptions are the per-call facts a strategy precondition may look at.
type AttemptOptions struct {
	DirectCapability bool
}

// AttemptStrategy is one entry of the ordered fallback list.
type AttemptStrategy struct {
	Path         CallPath
	Gateway      interfaces.IPaymentGateway
	Precondition func(opts AttemptOptions) bool
}

// GatewayPaths holds the configured gateway for each call path. A nil field means
// the path is not available.
type GatewayPaths struct {
	Direct   interfaces.IPaymentGateway
	Mediated interfaces.IPaymentGateway
}

// BuildAttemptStrategies returns direct first, then mediated.
func BuildAttemptStrategies(paths GatewayPaths, productionLike bool) []AttemptStrategy {
	var out []AttemptStrategy
	if paths.Direct != nil {
		out = append(out, AttemptStrategy{
			Path:    CallPathDirect,
			Gateway: paths.Direct,
			Precondition: func(opts AttemptOptions) bool {
				return productionLike && opts.DirectCapability
			},
		})
	}
	if paths.Mediated != nil {
		out = append(out, AttemptStrategy{
			Path:         CallPathMediated,
			Gateway:      paths.Mediated,
			Precondition: func(AttemptOptions) bool { return true },
		})
	}
	return out
}

func applicableStrategies(all []AttemptStrategy, opts AttemptOptions) []AttemptStrategy {
	out := make([]AttemptStrategy, 0, len(all))
	for _, s := range all {
		if s.Gateway == nil {
			continue
		}
		if s.Precondition == nil || s.Precondition(opts) {
			out = append(out, s)
		}
	}
	return out
}

package target

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Resolver abstracts DNS lookup so the hostname branch is testable without
// a real network.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// NetResolver is the production Resolver backed by the system resolver.
type NetResolver struct{}

func (NetResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	return net.DefaultResolver.LookupHost(ctx, host)
}

// Validator vets a single target string. It holds no state across calls;
// each Validate derives a fresh Details graph from its inputs.
type Validator struct {
	resolver     Resolver
	prober       Prober
	probeTimeout time.Duration
}

// Option configures a Validator.
type Option func(*Validator)

// WithResolver overrides DNS resolution (used by tests).
func WithResolver(r Resolver) Option {
	return func(v *Validator) { v.resolver = r }
}

// WithProber overrides the reachability probe (used by tests).
func WithProber(p Prober) Option {
	return func(v *Validator) { v.prober = p }
}

// WithProbeTimeout overrides the reachability probe timeout.
func WithProbeTimeout(d time.Duration) Option {
	return func(v *Validator) {
		if d > 0 {
			v.probeTimeout = d
		}
	}
}

// NewValidator builds a Validator with production capabilities unless
// options replace them.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		resolver:     NetResolver{},
		prober:       NewPingProber(),
		probeTimeout: DefaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate classifies target, enforces the private-network gate, and probes
// reachability. The boolean is the scope verdict, the string a reason an
// operator can act on, and Details the accumulated facts either way.
//
// The allowPrivate gate is policy owned by the caller and passed in
// explicitly; the validator never reads it from ambient configuration.
func (v *Validator) Validate(ctx context.Context, target string, allowPrivate bool) (bool, string, Details) {
	target = strings.TrimSpace(target)
	details := Details{Target: target}

	if ip := net.ParseIP(target); ip != nil {
		return v.validateIP(ctx, ip, allowPrivate, details)
	}

	details.Kind = KindHostname
	if !ValidHostname(target) {
		// Syntax failure is terminal before any DNS traffic.
		return false, fmt.Sprintf("invalid hostname format: %s", target), details
	}

	addrs, err := v.resolver.LookupHost(ctx, target)
	if err != nil || len(addrs) == 0 {
		resolved := false
		details.DNSResolved = &resolved
		return false, fmt.Sprintf("cannot resolve hostname: %s", target), details
	}
	resolved := true
	details.DNSResolved = &resolved

	ip := net.ParseIP(addrs[0])
	if ip == nil {
		return false, fmt.Sprintf("hostname %s resolved to an unusable address %q", target, addrs[0]), details
	}

	ok, _, details := v.validateIP(ctx, ip, allowPrivate, details)
	if !ok {
		// The only gate validateIP enforces is the private-network one;
		// rephrase it in terms of the name the operator typed.
		return false, fmt.Sprintf("target %s resolves to private IP %s and private IPs are not allowed", target, ip), details
	}
	return true, fmt.Sprintf("valid hostname (resolves to %s)", ip), details
}

// validateIP runs the shared classification tail: private/public
// classification, the allow-private gate, and the reachability probe.
func (v *Validator) validateIP(ctx context.Context, ip net.IP, allowPrivate bool, details Details) (bool, string, Details) {
	if details.Kind == "" {
		details.Kind = KindIP
	}
	details.ResolvedIP = ip.String()

	// Loopback counts as private here: 127.0.0.0/8 joins the RFC 1918
	// ranges for scope purposes.
	private := ip.IsPrivate() || ip.IsLoopback()
	details.IsPrivate = &private

	if private && !allowPrivate {
		return false, fmt.Sprintf("target %s is a private IP address and private IPs are not allowed", ip), details
	}

	reachable := v.prober.Reachable(ctx, ip.String(), v.probeTimeout)
	details.IsReachable = &reachable
	if !reachable {
		log.Debug().Str("component", "target").Str("addr", ip.String()).Msg("target did not answer reachability probe")
	}

	return true, "valid IP address", details
}

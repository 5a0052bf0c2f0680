// Package target classifies and vets scan targets before any tool is
// pointed at them: IP-literal vs hostname detection, private/public network
// classification, DNS resolution, best-effort reachability probing, CIDR
// range vetting, and the advisory heuristics surfaced for human review.
package target

// Kind distinguishes the two input shapes a target string can take.
type Kind string

const (
	KindIP       Kind = "ip"
	KindHostname Kind = "hostname"
)

// Details accumulates the facts established about a target during one
// validation call. Pointer fields distinguish "not yet checked" from a
// checked-and-negative answer: nil means the corresponding probe never ran.
//
// A Details value is built incrementally inside a single Validate call and
// never cached or shared; repeating a validation re-derives everything.
type Details struct {
	Target     string `json:"target"`
	Kind       Kind   `json:"kind"`
	ResolvedIP string `json:"resolved_ip,omitempty"`

	IsPrivate   *bool `json:"is_private,omitempty"`
	IsReachable *bool `json:"is_reachable,omitempty"`

	// DNSResolved is only ever set on the hostname branch; literal IPs
	// never trigger a DNS lookup.
	DNSResolved *bool `json:"dns_resolved,omitempty"`
}

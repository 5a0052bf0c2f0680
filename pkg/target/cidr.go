package target

import (
	"fmt"
	"math"
	"net"
)

// LargeNetworkThreshold is the address count above which a range earns a
// "may take a long time" advisory. The advisory never fails validation.
const LargeNetworkThreshold = 1024

// RangeVerdict is the outcome of vetting a CIDR range.
type RangeVerdict struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`

	// AddressCount is the total number of addresses covered, saturating at
	// MaxUint64 for very wide IPv6 prefixes. Only meaningful when Valid.
	AddressCount uint64 `json:"address_count,omitempty"`

	// LargeNetwork flags ranges above LargeNetworkThreshold.
	LargeNetwork bool `json:"large_network,omitempty"`
}

// ValidateRange parses a CIDR range, tolerating host bits set in the
// address part (10.0.0.5/24 means 10.0.0.0/24), and reports the address
// count with a large-network advisory where warranted.
func ValidateRange(cidr string) RangeVerdict {
	_, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return RangeVerdict{Valid: false, Message: fmt.Sprintf("invalid network range: %v", err)}
	}

	ones, bits := ipNet.Mask.Size()
	hostBits := bits - ones

	var count uint64
	if hostBits >= 64 {
		count = math.MaxUint64
	} else {
		count = uint64(1) << hostBits
	}

	if count > LargeNetworkThreshold {
		return RangeVerdict{
			Valid:        true,
			Message:      fmt.Sprintf("network %s contains %d addresses; scanning may take a long time", ipNet, count),
			AddressCount: count,
			LargeNetwork: true,
		}
	}
	return RangeVerdict{
		Valid:        true,
		Message:      fmt.Sprintf("valid network range with %d addresses", count),
		AddressCount: count,
	}
}

package target

import (
	"net"
	"strings"
)

// localhostLiterals are the spellings of "this machine" that deserve a
// heads-up before someone scans them.
var localhostLiterals = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"::1":       true,
	"0.0.0.0":   true,
}

// awsPrefixes are first octets commonly assigned to AWS public ranges.
// Heuristic only; used to nudge the operator toward checking authorization.
var awsPrefixes = []string{"3.", "13.", "18.", "52.", "54."}

// CheckCommonIssues returns advisory warnings about a target string. The
// warnings never block validation; they exist so a human reviews the odd
// cases (scanning yourself, cloud provider space, gateway addresses)
// before committing to a scan.
func CheckCommonIssues(target string) []string {
	var issues []string
	target = strings.TrimSpace(target)

	if localhostLiterals[strings.ToLower(target)] {
		issues = append(issues, "Warning: target is localhost; you are scanning your own machine.")
	}

	for _, prefix := range awsPrefixes {
		if strings.HasPrefix(target, prefix) {
			issues = append(issues, "Warning: target appears to be an AWS IP; ensure you have proper authorization.")
			break
		}
	}

	if ip := net.ParseIP(target); ip != nil {
		s := ip.String()
		if strings.HasSuffix(s, ".1") {
			issues = append(issues, "Info: target ends in .1, likely a gateway or router.")
		}
		if strings.HasSuffix(s, ".254") {
			issues = append(issues, "Info: target ends in .254, commonly used for routers.")
		}
	}

	return issues
}

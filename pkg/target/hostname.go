package target

// ValidHostname reports whether name conforms to hostname syntax: at most
// 253 characters total, dot-separated labels of 1-63 characters drawn from
// letters, digits and hyphens, with no label starting or ending in a
// hyphen. A single trailing dot (FQDN form) is tolerated.
func ValidHostname(name string) bool {
	if name == "" {
		return false
	}
	if name[len(name)-1] == '.' {
		name = name[:len(name)-1]
	}
	if len(name) == 0 || len(name) > 253 {
		return false
	}

	start := 0
	for i := 0; i <= len(name); i++ {
		if i == len(name) || name[i] == '.' {
			if !validLabel(name[start:i]) {
				return false
			}
			start = i + 1
		}
	}
	return true
}

func validLabel(label string) bool {
	if len(label) == 0 || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return false
		}
	}
	return true
}

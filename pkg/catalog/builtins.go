package catalog

// builtinTemplates is the stock template library, grouped by category.
func builtinTemplates() []Template {
	return []Template{
		// Reconnaissance
		{
			Name:        "network-discovery",
			Category:    "reconnaissance",
			Description: "Basic network discovery scan",
			Command:     "nmap -sn {network}",
			Parameters:  map[string]string{"network": "Target network (e.g., 192.168.1.0/24)"},
			Examples: []string{
				"nmap -sn 192.168.1.0/24",
				"nmap -sn 10.0.0.0/24",
			},
			Notes:     "Quick host discovery without port scanning. Stealthy and fast.",
			RiskLevel: RiskLow,
		},
		{
			Name:        "port-scan-basic",
			Category:    "reconnaissance",
			Description: "Standard port scan of common ports",
			Command:     "nmap -sS -T4 -p- {target}",
			Parameters:  map[string]string{"target": "Target IP or hostname"},
			Examples: []string{
				"nmap -sS -T4 -p- 192.168.1.10",
				"nmap -sS -T4 -p- example.com",
			},
			Notes:     "SYN scan of all ports. May be detected by IDS.",
			RiskLevel: RiskMedium,
		},
		{
			Name:        "service-version-detection",
			Category:    "reconnaissance",
			Description: "Detect service versions on open ports",
			Command:     "nmap -sV -p {ports} {target}",
			Parameters: map[string]string{
				"ports":  "Ports to scan (e.g., 80,443 or 1-1000)",
				"target": "Target IP or hostname",
			},
			Examples: []string{
				"nmap -sV -p 80,443 192.168.1.10",
				"nmap -sV -p 1-1000 example.com",
			},
			Notes:     "Active service fingerprinting. Useful for vulnerability assessment.",
			RiskLevel: RiskMedium,
		},
		{
			Name:        "os-detection",
			Category:    "reconnaissance",
			Description: "Operating system detection",
			Command:     "nmap -O {target}",
			Parameters:  map[string]string{"target": "Target IP or hostname"},
			Examples: []string{
				"nmap -O 192.168.1.10",
				"nmap -O example.com",
			},
			Notes:     "Requires root/admin privileges. May be noisy.",
			RiskLevel: RiskMedium,
		},

		// Web application
		{
			Name:        "web-scan-basic",
			Category:    "web-application",
			Description: "Basic web server vulnerability scan",
			Command:     "nikto -h {target}",
			Parameters:  map[string]string{"target": "Target URL (e.g., http://example.com)"},
			Examples: []string{
				"nikto -h http://example.com",
				"nikto -h https://192.168.1.10",
			},
			Notes:     "Comprehensive but noisy. Generates many requests.",
			RiskLevel: RiskMedium,
		},
		{
			Name:        "web-scan-ssl",
			Category:    "web-application",
			Description: "Web scan with SSL/TLS testing",
			Command:     "nikto -h {target} -ssl",
			Parameters:  map[string]string{"target": "Target URL"},
			Examples: []string{
				"nikto -h https://example.com -ssl",
			},
			Notes:     "Includes SSL/TLS vulnerability testing.",
			RiskLevel: RiskMedium,
		},
		{
			Name:        "directory-enumeration",
			Category:    "web-application",
			Description: "Discover hidden directories and files",
			Command:     "dirb {target} {wordlist}",
			Parameters: map[string]string{
				"target":   "Target URL",
				"wordlist": "Path to wordlist (optional, uses default if empty)",
			},
			Examples: []string{
				"dirb http://example.com",
				"dirb http://example.com /usr/share/wordlists/dirb/common.txt",
			},
			Notes:     "Brute-force directory discovery. Can be time-consuming.",
			RiskLevel: RiskLow,
		},
		{
			Name:        "wordpress-scan",
			Category:    "web-application",
			Description: "WordPress vulnerability scanner",
			Command:     "wpscan --url {target} --enumerate {options}",
			Parameters: map[string]string{
				"target":  "WordPress site URL",
				"options": "Enumeration options (e.g., p,t,u for plugins,themes,users)",
			},
			Examples: []string{
				"wpscan --url http://example.com --enumerate p,t,u",
				"wpscan --url http://example.com --enumerate vp",
			},
			Notes:     "Specialized for WordPress sites. Very thorough.",
			RiskLevel: RiskMedium,
		},

		// Database testing
		{
			Name:        "sql-injection-test",
			Category:    "database",
			Description: "Test for SQL injection vulnerabilities",
			Command:     "sqlmap -u {url} --batch",
			Parameters:  map[string]string{"url": "Target URL with parameter (e.g., http://example.com/page?id=1)"},
			Examples: []string{
				"sqlmap -u 'http://example.com/page.php?id=1' --batch",
				"sqlmap -u 'http://example.com/login.php' --data='user=admin&pass=test' --batch",
			},
			Notes:     "Automated SQL injection testing. May modify database.",
			RiskLevel: RiskHigh,
		},
		{
			Name:        "sql-injection-enumerate-dbs",
			Category:    "database",
			Description: "Enumerate databases after SQL injection",
			Command:     "sqlmap -u {url} --dbs --batch",
			Parameters:  map[string]string{"url": "Target URL with vulnerable parameter"},
			Examples: []string{
				"sqlmap -u 'http://example.com/page.php?id=1' --dbs --batch",
			},
			Notes:     "Lists available databases. Only use if injection confirmed.",
			RiskLevel: RiskHigh,
		},

		// Password attacks
		{
			Name:        "ssh-bruteforce",
			Category:    "password-attack",
			Description: "SSH password brute force attack",
			Command:     "hydra -l {username} -P {passwordlist} {target} ssh",
			Parameters: map[string]string{
				"username":     "Target username",
				"passwordlist": "Path to password list",
				"target":       "Target IP or hostname",
			},
			Examples: []string{
				"hydra -l root -P /usr/share/wordlists/rockyou.txt 192.168.1.10 ssh",
				"hydra -l admin -P passwords.txt example.com ssh",
			},
			Notes:     "Aggressive attack. May lock accounts or trigger alerts.",
			RiskLevel: RiskHigh,
		},
		{
			Name:        "http-form-bruteforce",
			Category:    "password-attack",
			Description: "HTTP form brute force attack",
			Command:     "hydra -l {username} -P {passwordlist} {target} http-post-form '{path}:{params}:{failure}'",
			Parameters: map[string]string{
				"username":     "Target username",
				"passwordlist": "Path to password list",
				"target":       "Target domain",
				"path":         "Login page path",
				"params":       "POST parameters with ^USER^ and ^PASS^ placeholders",
				"failure":      "String in response indicating failed login",
			},
			Examples: []string{
				"hydra -l admin -P pass.txt example.com http-post-form '/login.php:user=^USER^&pass=^PASS^:Invalid'",
			},
			Notes:     "Complex syntax. Test carefully to avoid false positives.",
			RiskLevel: RiskHigh,
		},

		// Wireless
		{
			Name:        "wifi-monitor-mode",
			Category:    "wireless",
			Description: "Enable monitor mode on wireless interface",
			Command:     "airmon-ng start {interface}",
			Parameters:  map[string]string{"interface": "Wireless interface (e.g., wlan0)"},
			Examples: []string{
				"airmon-ng start wlan0",
				"airmon-ng start wlan1",
			},
			Notes:     "Required before wireless attacks. May kill network processes.",
			RiskLevel: RiskLow,
		},
		{
			Name:        "wifi-scan",
			Category:    "wireless",
			Description: "Scan for wireless networks",
			Command:     "airodump-ng {interface}",
			Parameters:  map[string]string{"interface": "Monitor mode interface (e.g., wlan0mon)"},
			Examples: []string{
				"airodump-ng wlan0mon",
			},
			Notes:     "Passive scanning. Press Ctrl+C to stop.",
			RiskLevel: RiskLow,
		},

		// Network sniffing
		{
			Name:        "capture-traffic",
			Category:    "sniffing",
			Description: "Capture network traffic to file",
			Command:     "wireshark -i {interface} -k -w {output}",
			Parameters: map[string]string{
				"interface": "Network interface (e.g., eth0, wlan0)",
				"output":    "Output file path (.pcap)",
			},
			Examples: []string{
				"wireshark -i eth0 -k -w capture.pcap",
				"wireshark -i wlan0 -k -w traffic.pcap",
			},
			Notes:     "Requires root/admin. Captures all traffic on interface.",
			RiskLevel: RiskLow,
		},

		// Exploitation
		{
			Name:        "metasploit-console",
			Category:    "exploitation",
			Description: "Start Metasploit Framework console",
			Command:     "msfconsole",
			Parameters:  map[string]string{},
			Examples:    []string{"msfconsole"},
			Notes:       "Interactive exploitation framework. Powerful and complex.",
			RiskLevel:   RiskHigh,
		},
	}
}

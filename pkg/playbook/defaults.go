package playbook

import "time"

// DefaultPlaybooks returns the built-in workflows seeded into a fresh
// workspace.
func DefaultPlaybooks() []*Playbook {
	now := time.Now()

	webApp := &Playbook{
		Name:        "Web Application Pentest",
		Description: "Standard web application security assessment workflow",
		Author:      "kaliagent",
		Created:     now,
		Category:    "web-application",
		TargetType:  "web-app",
		Tags:        []string{"web", "owasp", "standard"},
		Steps: []Step{
			{
				Command:         "nmap -sV -p 80,443,8080,8443 {target}",
				Description:     "Identify web services and versions",
				ExpectedOutcome: "List of open web ports and running services",
				Notes:           "Replace {target} with actual target IP or domain",
			},
			{
				Command:         "nikto -h {target}",
				Description:     "Scan for web server vulnerabilities",
				ExpectedOutcome: "List of potential vulnerabilities and misconfigurations",
				Notes:           "This scan is noisy and will be logged",
			},
			{
				Command:         "dirb http://{target}",
				Description:     "Enumerate directories and files",
				ExpectedOutcome: "Discovery of hidden directories, files, and endpoints",
				Notes:           "Can take time depending on wordlist size",
			},
			{
				Command:         "sqlmap -u '{target_url}' --batch --risk=1 --level=1",
				Description:     "Test for SQL injection vulnerabilities",
				ExpectedOutcome: "Identification of SQL injection points",
				Notes:           "Start with low risk/level, increase if needed",
			},
		},
	}

	networkRecon := &Playbook{
		Name:        "Network Reconnaissance",
		Description: "Comprehensive network discovery and mapping",
		Author:      "kaliagent",
		Created:     now,
		Category:    "reconnaissance",
		TargetType:  "network",
		Tags:        []string{"recon", "network", "discovery"},
		Steps: []Step{
			{
				Command:         "nmap -sn {network}/24",
				Description:     "Discover live hosts on the network",
				ExpectedOutcome: "List of active IP addresses",
				Notes:           "Replace {network} with target network (e.g., 192.168.1.0)",
			},
			{
				Command:         "nmap -sS -p- {target}",
				Description:     "Scan all TCP ports on discovered hosts",
				ExpectedOutcome: "Complete list of open ports",
				Notes:           "This can take a while for all 65535 ports",
			},
			{
				Command:         "nmap -sV -sC -p {ports} {target}",
				Description:     "Service version and script scanning",
				ExpectedOutcome: "Detailed service information and vulnerability hints",
				Notes:           "Use ports discovered in previous step",
			},
			{
				Command:         "nmap -O {target}",
				Description:     "Operating system detection",
				ExpectedOutcome: "OS identification and version",
				Notes:           "Requires root/admin privileges",
			},
		},
	}

	return []*Playbook{webApp, networkRecon}
}

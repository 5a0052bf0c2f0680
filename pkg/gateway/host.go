package gateway

import "os/exec"

// Host abstracts the probes the gateway makes against the machine it runs
// on. Production code uses SystemHost; tests inject fakes so validation is
// checkable without any tools installed.
type Host interface {
	// LookPath reports the absolute path of an executable found on the
	// host's search path, or an error if it is not installed.
	LookPath(name string) (string, error)
}

// SystemHost is the production Host backed by the process environment.
type SystemHost struct{}

func (SystemHost) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

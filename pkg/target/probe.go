package target

import (
	"context"
	"time"

	"github.com/go-ping/ping"
	"github.com/rs/zerolog/log"
)

// DefaultProbeTimeout bounds the reachability check. Reachability is
// best-effort: many in-scope targets intentionally drop ICMP, so failing to
// hear back is recorded, never treated as a validation failure.
const DefaultProbeTimeout = 2 * time.Second

// Prober answers whether an address responds to a reachability probe
// within the given timeout. Tests inject fakes; production uses PingProber.
type Prober interface {
	Reachable(ctx context.Context, addr string, timeout time.Duration) bool
}

// Pinger is the slice of the ping library the prober depends on.
type Pinger interface {
	Run() error
	Stop()
	Statistics() *ping.Statistics

	SetPrivileged(bool)
	SetCount(int)
	SetTimeout(time.Duration)
}

type pingerFactoryFunc func(addr string) (Pinger, error)

// PingProber probes reachability with ICMP echo requests through the
// go-ping library rather than shelling out to a platform ping binary.
// Unprivileged UDP mode is used so no raw-socket capability is required.
type PingProber struct {
	pingerFactory pingerFactoryFunc
}

// NewPingProber builds the production prober.
func NewPingProber() *PingProber {
	return &PingProber{
		pingerFactory: func(addr string) (Pinger, error) {
			p, err := ping.NewPinger(addr)
			if err != nil {
				return nil, err
			}
			return &realPingerAdapter{p: p}, nil
		},
	}
}

// Reachable sends a single echo request and reports whether a reply came
// back before the timeout. All failure modes (pinger construction, send
// errors, silence) collapse to false.
func (pr *PingProber) Reachable(ctx context.Context, addr string, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	pinger, err := pr.pingerFactory(addr)
	if err != nil {
		log.Debug().Str("component", "target").Str("addr", addr).Err(err).Msg("failed to create pinger")
		return false
	}

	pinger.SetPrivileged(false)
	pinger.SetCount(1)
	pinger.SetTimeout(timeout)

	opCtx, opCancel := context.WithTimeout(ctx, timeout+500*time.Millisecond)
	defer opCancel()

	go func() {
		<-opCtx.Done()
		pinger.Stop()
	}()

	if err := pinger.Run(); err != nil {
		log.Debug().Str("component", "target").Str("addr", addr).Err(err).Msg("ping run error")
	}
	stats := pinger.Statistics()
	return stats != nil && stats.PacketsRecv > 0
}

// realPingerAdapter wraps github.com/go-ping/ping.Pinger to implement our
// Pinger interface.
type realPingerAdapter struct {
	p *ping.Pinger
}

func (r *realPingerAdapter) Run() error                   { return r.p.Run() }
func (r *realPingerAdapter) Stop()                        { r.p.Stop() }
func (r *realPingerAdapter) Statistics() *ping.Statistics { return r.p.Statistics() }
func (r *realPingerAdapter) SetPrivileged(v bool)         { r.p.SetPrivileged(v) }
func (r *realPingerAdapter) SetCount(c int)               { r.p.Count = c }
func (r *realPingerAdapter) SetTimeout(t time.Duration)   { r.p.Timeout = t }

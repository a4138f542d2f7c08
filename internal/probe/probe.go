package probe

import (
	"context"
	"net/netip"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"frigate_confgen/internal/camera"
)

const (
	defaultTimeout = 3 * time.Second
	defaultWorkers = 16
)

// Runner issues a single reachability probe against one address.
type Runner interface {
	Probe(ctx context.Context, ip string) bool
}

// PingRunner probes with one ICMP echo via the system ping binary, which
// keeps the process unprivileged. A missing binary or a malformed address
// resolves to unreachable rather than an error.
type PingRunner struct {
	path    string
	timeout time.Duration
}

func NewPingRunner(timeout time.Duration) *PingRunner {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	path, err := exec.LookPath("ping")
	if err != nil {
		path = ""
	}
	return &PingRunner{path: path, timeout: timeout}
}

func (p *PingRunner) Probe(ctx context.Context, ip string) bool {
	if p.path == "" {
		return false
	}
	if _, err := netip.ParseAddr(ip); err != nil {
		return false
	}

	secs := int(p.timeout.Seconds())
	if secs < 1 {
		secs = 1
	}

	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(probeCtx, p.path, "-c", "1", "-W", strconv.Itoa(secs), ip)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}

// Prober fans probes out across a bounded worker pool. Results are written
// once into an index-keyed slice, so the returned order always matches the
// input order no matter how probes interleave.
type Prober struct {
	log     zerolog.Logger
	runner  Runner
	workers int
}

func New(log zerolog.Logger, runner Runner, workers int) *Prober {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Prober{log: log, runner: runner, workers: workers}
}

// Run probes every camera and returns the batch in input order with
// reachability verdicts attached. Probes are independent: each is bounded
// by the runner's own timeout and a failure never aborts the run.
func (p *Prober) Run(ctx context.Context, cams []camera.Resolved) []camera.Probed {
	out := make([]camera.Probed, len(cams))
	for i, c := range cams {
		out[i] = camera.Probed{Resolved: c}
	}
	if len(cams) == 0 {
		return out
	}

	type job struct {
		index int
		cam   camera.Resolved
	}
	jobs := make(chan job)
	wg := sync.WaitGroup{}

	worker := func() {
		defer wg.Done()
		for j := range jobs {
			if ctx.Err() != nil {
				return
			}
			ok := p.runner.Probe(ctx, j.cam.IP)
			out[j.index].Reachable = ok

			ev := p.log.Info().Str("camera", j.cam.SafeName).Str("ip", j.cam.IP)
			if ok {
				ev.Msg("camera online")
			} else {
				ev.Msg("camera offline")
			}
		}
	}

	workers := p.workers
	if workers > len(cams) {
		workers = len(cams)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go worker()
	}

	for i, c := range cams {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return out
		case jobs <- job{index: i, cam: c}:
		}
	}
	close(jobs)
	wg.Wait()

	return out
}

// Static is a prober stand-in that marks every camera with a fixed verdict
// without touching the network. Used when probing is disabled.
type Static struct {
	Reachable bool
}

func (s Static) Run(_ context.Context, cams []camera.Resolved) []camera.Probed {
	out := make([]camera.Probed, len(cams))
	for i, c := range cams {
		out[i] = camera.Probed{Resolved: c, Reachable: s.Reachable}
	}
	return out
}

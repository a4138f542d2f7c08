package pipeline

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"frigate_confgen/internal/camera"
	"frigate_confgen/internal/config"
	"frigate_confgen/internal/loader"
	"frigate_confgen/internal/naming"
	"frigate_confgen/internal/render"
)

// Prober classifies each camera as reachable or not. The concrete
// implementation lives in internal/probe; tests substitute fakes.
type Prober interface {
	Run(ctx context.Context, cams []camera.Resolved) []camera.Probed
}

// Pipeline runs one load -> resolve -> probe -> render pass.
type Pipeline struct {
	log    zerolog.Logger
	prober Prober
}

func New(log zerolog.Logger, prober Prober) *Pipeline {
	return &Pipeline{log: log, prober: prober}
}

// Run executes the whole pass and reports what it did. Fatal load errors
// return before anything is written; dropped rows and failed probes are
// folded into the summary instead.
func (p *Pipeline) Run(ctx context.Context, cfg config.Config) (camera.Summary, error) {
	loaded, err := loader.Load(cfg.Input)
	if err != nil {
		return camera.Summary{}, err
	}
	for _, w := range loaded.Warnings {
		p.log.Warn().Int("row", w.Row).Msg("row dropped: " + w.Reason)
	}
	p.log.Info().Str("input", cfg.Input).Int("cameras", len(loaded.Records)).Msg("camera list loaded")

	resolved := resolve(loaded.Records)

	p.log.Info().Int("workers", cfg.Probe.Workers).Msg("checking camera connectivity")
	probed := p.prober.Run(ctx, resolved)

	ordered := render.Order(probed)
	if err := render.WriteFile(cfg.Output, ordered, render.Options{
		RTSPPort:     cfg.RTSP.Port,
		MainPath:     cfg.RTSP.MainPath,
		SubPath:      cfg.RTSP.SubPath,
		RestreamBase: cfg.RTSP.RestreamBase,
	}); err != nil {
		return camera.Summary{}, err
	}
	p.log.Info().Str("output", cfg.Output).Msg("configuration written")

	return summarize(loaded, probed), nil
}

func resolve(records []camera.Record) []camera.Resolved {
	raws := make([]string, len(records))
	for i, r := range records {
		raws[i] = r.RawName
	}
	names := naming.Resolve(raws)

	out := make([]camera.Resolved, len(records))
	for i, r := range records {
		out[i] = camera.Resolved{
			Record:   r,
			SafeName: names[i].SafeName,
			Renamed:  names[i].Renamed,
		}
	}
	return out
}

func summarize(loaded loader.Result, probed []camera.Probed) camera.Summary {
	sum := camera.Summary{
		Loaded:  len(loaded.Records),
		Dropped: loaded.Warnings,
	}
	for _, c := range probed {
		if c.Reachable {
			sum.Reachable++
		} else {
			sum.Unreachable++
		}
		if c.Renamed {
			sum.Renames = append(sum.Renames, camera.Rename{
				From: strings.TrimSpace(c.RawName),
				To:   c.SafeName,
			})
		}
	}
	sum.MainStreams = len(probed)
	sum.SubStreams = len(probed)
	return sum
}

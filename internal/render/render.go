package render

import (
	"fmt"
	"os"
	"strings"

	"frigate_confgen/internal/camera"
)

const audioPreset = "preset-record-generic-audio-aac"

// Options control the stream URLs embedded in the rendered config.
type Options struct {
	RTSPPort     int
	MainPath     string
	SubPath      string
	RestreamBase string
}

func (o Options) withDefaults() Options {
	if o.RTSPPort <= 0 {
		o.RTSPPort = 554
	}
	if o.MainPath == "" {
		o.MainPath = "s0"
	}
	if o.SubPath == "" {
		o.SubPath = "s1"
	}
	if o.RestreamBase == "" {
		o.RestreamBase = "rtsp://127.0.0.1:8554"
	}
	return o
}

// Order partitions cameras reachable-first. The partition is stable:
// relative input order is preserved within each group.
func Order(cams []camera.Probed) []camera.Probed {
	out := make([]camera.Probed, 0, len(cams))
	for _, c := range cams {
		if c.Reachable {
			out = append(out, c)
		}
	}
	for _, c := range cams {
		if !c.Reachable {
			out = append(out, c)
		}
	}
	return out
}

// Render emits the streams and cameras sections for an already-ordered
// batch. Output depends only on the input batch and options, so identical
// runs produce byte-identical text.
func Render(cams []camera.Probed, opts Options) string {
	opts = opts.withDefaults()
	var b strings.Builder

	b.WriteString("        MAIN FEED STREAMS\n\n")
	b.WriteString("  streams:\n")
	markedOffline := false
	for _, c := range cams {
		if !c.Reachable && !markedOffline {
			b.WriteString("    # OFFLINE CAMERAS\n")
			markedOffline = true
		}
		b.WriteString("    #Camera ID\n")
		fmt.Fprintf(&b, "    %s:\n", c.SafeName)
		fmt.Fprintf(&b, "      - %s\n", streamURL(c, opts, opts.MainPath))
		fmt.Fprintf(&b, "      - ffmpeg:%s#audio=aac\n", c.SafeName)
		fmt.Fprintf(&b, "    %s_Sub:\n", c.SafeName)
		fmt.Fprintf(&b, "      - %s\n", streamURL(c, opts, opts.SubPath))
		fmt.Fprintf(&b, "      - ffmpeg:%s_Sub#audio=aac\n", c.SafeName)
	}

	b.WriteString("\n        FFMPEG STREAMS\n\n")
	b.WriteString("cameras:\n")
	markedOffline = false
	for _, c := range cams {
		if !c.Reachable && !markedOffline {
			b.WriteString("  # OFFLINE CAMERAS\n")
			markedOffline = true
		}
		b.WriteString("  #Camera ID\n")
		fmt.Fprintf(&b, "  %s:\n", c.SafeName)
		b.WriteString("    ffmpeg:\n")
		b.WriteString("      inputs:\n")
		fmt.Fprintf(&b, "        - path: %s/%s\n", opts.RestreamBase, c.SafeName)
		b.WriteString("          roles:\n")
		b.WriteString("            - record\n")
		fmt.Fprintf(&b, "        - path: %s/%s_Sub\n", opts.RestreamBase, c.SafeName)
		b.WriteString("          roles:\n")
		b.WriteString("            - detect\n")
		b.WriteString("      output_args:\n")
		fmt.Fprintf(&b, "        record: %s\n", audioPreset)
	}

	return b.String()
}

// WriteFile renders the ordered batch and writes it to path, replacing any
// previous config.
func WriteFile(path string, cams []camera.Probed, opts Options) error {
	if err := os.WriteFile(path, []byte(Render(cams, opts)), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func streamURL(c camera.Probed, opts Options, streamPath string) string {
	return fmt.Sprintf("rtsp://%s:%s@%s:%d/%s", c.Username, c.Password, c.IP, opts.RTSPPort, streamPath)
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stillkit/stills"
	"github.com/stillkit/stills/internal/util"
)

func newProbeCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "probe <video>",
		Short: "Print container and stream metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output metadata as JSON")
	return cmd
}

func runProbe(path string, asJSON bool) error {
	return stills.WithReader(path, func(r *stills.Reader) error {
		meta := r.Metadata()

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(probeOutput(path, meta))
		}

		printMeta(path, meta)
		return nil
	})
}

// probeOutput shapes the metadata for JSON consumers, with optional fields
// omitted rather than zeroed.
func probeOutput(path string, meta *stills.Metadata) map[string]interface{} {
	out := map[string]interface{}{
		"file":                  util.GetFilename(path),
		"container":             meta.ContainerFormat,
		"codec":                 meta.Codec,
		"width":                 meta.Width,
		"height":                meta.Height,
		"fps":                   meta.FPS,
		"duration_seconds":      meta.Duration,
		"frame_count":           meta.FrameCount,
		"frame_count_estimated": meta.FrameCountEstimated,
		"is_hdr":                meta.IsHDR,
		"has_audio":             meta.HasAudio,
	}
	if meta.FPSDen != 0 {
		out["fps_rational"] = fmt.Sprintf("%d/%d", meta.FPSNum, meta.FPSDen)
	}
	if meta.BitRate != nil {
		out["bit_rate"] = *meta.BitRate
	}
	if meta.BitDepth != nil {
		out["bit_depth"] = *meta.BitDepth
	}
	if meta.ColorSpace != nil {
		out["color_space"] = *meta.ColorSpace
	}
	if meta.Timecode != nil {
		out["timecode"] = *meta.Timecode
	}
	if meta.AudioCodec != nil {
		out["audio_codec"] = *meta.AudioCodec
	}
	if meta.AudioChannels != nil {
		out["audio_channels"] = *meta.AudioChannels
	}
	if meta.AudioSampleRate != nil {
		out["audio_sample_rate"] = *meta.AudioSampleRate
	}
	return out
}

func printMeta(path string, meta *stills.Metadata) {
	fmt.Printf("File:       %s\n", util.GetFilename(path))
	fmt.Printf("Container:  %s\n", meta.ContainerFormat)
	fmt.Printf("Codec:      %s\n", meta.Codec)
	fmt.Printf("Resolution: %dx%d\n", meta.Width, meta.Height)
	fmt.Printf("Frame rate: %.3f fps\n", meta.FPS)
	fmt.Printf("Duration:   %s\n", util.FormatDuration(meta.Duration))

	count := fmt.Sprintf("%d", meta.FrameCount)
	if meta.FrameCountEstimated {
		count += " (estimated)"
	}
	fmt.Printf("Frames:     %s\n", count)

	if meta.BitDepth != nil {
		fmt.Printf("Bit depth:  %d\n", *meta.BitDepth)
	}
	if meta.ColorSpace != nil {
		fmt.Printf("Colour:     %s\n", *meta.ColorSpace)
	}
	dynamicRange := "SDR"
	if meta.IsHDR {
		dynamicRange = "HDR"
	}
	fmt.Printf("Dynamic:    %s\n", dynamicRange)

	if meta.HasAudio && meta.AudioCodec != nil {
		audio := *meta.AudioCodec
		if meta.AudioChannels != nil {
			audio = fmt.Sprintf("%s, %d ch", audio, *meta.AudioChannels)
		}
		if meta.AudioSampleRate != nil {
			audio = fmt.Sprintf("%s, %d Hz", audio, *meta.AudioSampleRate)
		}
		fmt.Printf("Audio:      %s\n", audio)
	}
	if meta.Timecode != nil {
		fmt.Printf("Timecode:   %s\n", *meta.Timecode)
	}
}

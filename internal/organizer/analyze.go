package organizer

import (
	"context"
	"path/filepath"

	"moviekit/internal/logging"
	"moviekit/internal/media/stream"
	"moviekit/internal/services"
)

// Analysis is the cached stream list of one probed video.
type Analysis struct {
	Path    string
	LogPath string
	Streams stream.Set
}

// Grouped splits the analysed streams into video, audio and subtitle tracks.
func (a Analysis) Grouped() (video, audio, subtitle []stream.Stream) {
	return stream.SeparateByType(a.Streams.Streams())
}

// Analyze probes path and replaces the cached stream list with its media
// streams.
func (o *Organizer) Analyze(ctx context.Context, path string) (Analysis, error) {
	logger := logging.WithContext(ctx, o.logger)
	result, err := o.prober.Inspect(ctx, path)
	if err != nil {
		return Analysis{}, services.Wrap(services.ErrExternalTool, "analyze", filepath.Base(path), "ffprobe failed", err)
	}
	analysis := Analysis{
		Path:    path,
		LogPath: result.LogPath,
		Streams: stream.NewSet(stream.FilterMedia(result.Streams)),
	}
	o.analysis = &analysis
	video, audio, subtitle := analysis.Grouped()
	logger.Info("streams analysed",
		logging.String(logging.FieldFile, filepath.Base(path)),
		logging.Int("video_streams", len(video)),
		logging.Int("audio_streams", len(audio)),
		logging.Int("subtitle_streams", len(subtitle)),
		logging.String("probe_log", result.LogPath),
		logging.Bool("cached", result.Cached),
	)
	return analysis, nil
}

// AnalyzeFirstVideo analyses the first video of the movies folder in name order.
func (o *Organizer) AnalyzeFirstVideo(ctx context.Context) (Analysis, error) {
	listing, err := o.Scan(ctx)
	if err != nil {
		return Analysis{}, err
	}
	first, ok := listing.FirstVideo()
	if !ok {
		return Analysis{}, services.Wrap(services.ErrNotFound, "analyze", o.Folder(), "", ErrNoVideos)
	}
	return o.Analyze(ctx, first)
}

// Analysis returns the cached analysis, if any.
func (o *Organizer) Analysis() (Analysis, bool) {
	if o.analysis == nil {
		return Analysis{}, false
	}
	return *o.analysis, true
}

func (o *Organizer) forgetAnalysis() {
	o.analysis = nil
}

package organizer

import (
	"context"
	"path/filepath"
	"strings"

	"moviekit/internal/journal"
	"moviekit/internal/preview"
	"moviekit/internal/services"
)

// GeneratePreviews turns every image of the folder into one poster per video
// and removes the source image. In a series each poster is stamped with its
// episode number.
func (o *Organizer) GeneratePreviews(ctx context.Context) (Report, error) {
	opts, err := preview.OptionsFromConfig(o.cfg.Preview)
	if err != nil {
		return Report{}, services.Wrap(services.ErrConfiguration, "preview", "", "", err)
	}
	listing, err := o.Scan(ctx)
	if err != nil {
		return Report{}, err
	}
	if len(listing.Images) == 0 {
		return Report{}, services.Wrap(services.ErrNotFound, "preview", o.Folder(), "no images in movies folder", nil)
	}
	if len(listing.Videos) == 0 {
		return Report{}, ErrNoVideos
	}
	copies := len(listing.Videos)
	numbered := listing.IsSeries()

	var report Report
	for _, image := range listing.Images {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		// Posters from an earlier run are not sources.
		if strings.Contains(filepath.Base(image), ".preview.copy.") {
			continue
		}
		result, err := preview.Generate(image, copies, numbered, opts)
		if err != nil {
			err = services.Wrap(services.ErrValidation, "preview", filepath.Base(image), "", err)
		} else if rmErr := o.files.Remove(ctx, image); rmErr != nil {
			err = services.Wrap(services.ErrTransient, "remove", filepath.Base(image), "previews written but source kept", rmErr)
		}
		o.record(ctx, &report, Outcome{
			Kind:   journal.KindPreview,
			Source: image,
			Target: strings.Join(result.Outputs, ", "),
			Err:    err,
		})
	}
	return report, nil
}

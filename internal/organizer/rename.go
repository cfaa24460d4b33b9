package organizer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"moviekit/internal/fileutil"
	"moviekit/internal/journal"
	"moviekit/internal/library"
	"moviekit/internal/services"
)

// Rename is one planned file rename.
type Rename struct {
	Class  library.Class
	Source string
	Target string
}

// PlanRenames computes target names for every video, subtitle and image of
// listing. A folder with exactly one video is a film and every file gets the
// bare template; otherwise files are numbered <template>.E01, .E02, ... with
// an independent counter per class. Subtitles also carry the configured
// suffix.
func (o *Organizer) PlanRenames(listing library.Listing) ([]Rename, error) {
	tpl := strings.TrimSpace(o.cfg.Library.NameTemplate)
	if tpl == "" {
		return nil, services.Wrap(services.ErrConfiguration, "rename", "", "library.name_template is not set", nil)
	}
	suffix := strings.TrimSpace(o.cfg.Library.SubtitleSuffix)
	series := listing.IsSeries()

	name := func(n int) string {
		if series {
			return fmt.Sprintf("%s.E%02d", tpl, n)
		}
		return tpl
	}
	var plan []Rename
	add := func(class library.Class, files []string, withSuffix bool) {
		for i, source := range files {
			base := name(i + 1)
			if withSuffix && suffix != "" {
				base += "." + suffix
			}
			target := filepath.Join(filepath.Dir(source), base+filepath.Ext(source))
			plan = append(plan, Rename{Class: class, Source: source, Target: target})
		}
	}
	add(library.ClassVideo, listing.Videos, false)
	add(library.ClassSubtitle, listing.Subtitles, true)
	add(library.ClassImage, listing.Images, false)
	return plan, nil
}

// RenameFiles renames the folder's files after the plan. With dryRun set
// nothing is touched and the plan is returned alone. Existing targets are
// never overwritten.
func (o *Organizer) RenameFiles(ctx context.Context, dryRun bool) ([]Rename, Report, error) {
	listing, err := o.Scan(ctx)
	if err != nil {
		return nil, Report{}, err
	}
	plan, err := o.PlanRenames(listing)
	if err != nil || dryRun {
		return plan, Report{}, err
	}
	var report Report
	for _, r := range plan {
		if err := ctx.Err(); err != nil {
			return plan, report, err
		}
		o.record(ctx, &report, Outcome{
			Kind:   journal.KindRename,
			Source: r.Source,
			Target: r.Target,
			Err:    o.renameOne(ctx, r),
		})
	}
	return plan, report, nil
}

func (o *Organizer) renameOne(ctx context.Context, r Rename) error {
	if r.Source == r.Target {
		return services.Wrap(services.ErrValidation, "rename", filepath.Base(r.Source), "already named", nil)
	}
	_, err := o.files.Do(ctx, "rename", r.Source, func() error {
		return fileutil.RenameNoClobber(r.Source, r.Target)
	})
	switch {
	case errors.Is(err, fileutil.ErrTargetExists):
		return services.Wrap(services.ErrValidation, "rename", filepath.Base(r.Source),
			fmt.Sprintf("%s already exists", filepath.Base(r.Target)), err)
	case err != nil:
		return services.Wrap(services.ErrTransient, "rename", filepath.Base(r.Source), "", err)
	}
	return nil
}

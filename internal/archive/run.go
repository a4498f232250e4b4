package archive

import (
	"context"
	"time"

	"gitbookpdf/internal/discover"
	"gitbookpdf/internal/model"
)

// Run executes one complete archive: discovery, then one sequential
// archiving pass over the discovered links.
//
// A discovery failure aborts the run with an error and no pages archived.
// Per-link failures are isolated: they are recorded in the report and the
// loop continues. Context cancellation stops the loop between links; the
// partial report is returned alongside the context error.
func (a *Archiver) Run(ctx context.Context, d *discover.Discoverer) (*model.RunReport, error) {
	report := model.NewRunReport(a.cfg.EntryURL, a.cfg.OutDir)

	links, err := d.Discover(ctx, a.engine)
	if err != nil {
		return nil, err
	}
	report.Discovered = len(links)
	a.logger.Info("discovery complete", "links", len(links))

	for i, href := range links {
		select {
		case <-ctx.Done():
			report.Elapsed = time.Since(report.StartedAt)
			return report, ctx.Err()
		default:
		}

		a.logger.Info("archiving page", "href", href, "progress", i+1, "total", len(links))
		report.Add(a.ArchivePage(ctx, href))
	}

	report.Elapsed = time.Since(report.StartedAt)
	return report, nil
}

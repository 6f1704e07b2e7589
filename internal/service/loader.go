package service

import (
	"context"
	"errors"

	"thermostat_panel/internal/device"
	"thermostat_panel/internal/logger"
	"thermostat_panel/internal/models"
	"thermostat_panel/internal/repository"
	"thermostat_panel/internal/view"
)

const opLoad = "Failed to load page"

// PageLoader fetches the device root page and rebuilds the page model from it.
type PageLoader struct {
	client   *device.Client
	doc      view.Document
	reporter Reporter
	events   repository.EventRepo
	log      *logger.Logger
	poller   Poller
}

func NewPageLoader(d Deps, doc view.Document, poller Poller) *PageLoader {
	return &PageLoader{
		client:   d.Client,
		doc:      doc,
		reporter: d.Reporter,
		events:   d.Events,
		log:      d.logger(),
		poller:   poller,
	}
}

// Load discards all client state and installs the CSRF token from the
// device's root page. If the device cannot be reached the current page is
// kept. A root page without a token still resets the page.
func (l *PageLoader) Load(ctx context.Context) error {
	token, err := l.client.FetchCSRFToken(ctx)
	if err != nil && !errors.Is(err, device.ErrNoCSRF) {
		l.reporter.Report(ctx, opLoad, err)
		return err
	}

	l.doc.Reset()
	if err != nil {
		l.reporter.Report(ctx, opLoad, err)
		return err
	}
	l.doc.SetMeta(view.CSRFMeta, token)
	l.log.Infow("page_loaded")

	if l.events != nil {
		ev := models.PanelEvent{Type: models.EventReload, Description: "page loaded"}
		if aerr := l.events.Append(context.WithoutCancel(ctx), ev); aerr != nil {
			l.log.Warnw("panel_event_append_failed", "err", aerr)
		}
	}
	return nil
}

// Reload is Load followed by an immediate Poll. The returned error is the
// load failure, already reported; a failed poll does not fail the reload.
func (l *PageLoader) Reload(ctx context.Context) error {
	if err := l.Load(ctx); err != nil {
		return err
	}
	l.poller.Poll(ctx)
	return nil
}

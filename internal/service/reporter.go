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

// ErrorReporter logs a failure, shows it in the errorLog element and appends
// it to the panel event log.
type ErrorReporter struct {
	log     *logger.Logger
	view    view.View
	events  repository.EventRepo
	counter ErrorCounter
}

func NewErrorReporter(d Deps, counter ErrorCounter) *ErrorReporter {
	return &ErrorReporter{
		log:     d.logger(),
		view:    d.View,
		events:  d.Events,
		counter: counter,
	}
}

// Report never fails; a nil error is ignored.
func (r *ErrorReporter) Report(ctx context.Context, operation string, err error) {
	if err == nil {
		return
	}
	msg := operation + ": " + err.Error()
	r.log.Errorw("panel_operation_failed", "operation", operation, "kind", errorKind(err), "err", err)

	if r.view != nil && r.view.Has(view.ErrorLog) {
		r.view.SetText(view.ErrorLog, msg)
	}
	if r.counter != nil {
		r.counter.ErrorReported(operation)
	}
	if r.events == nil {
		return
	}
	ev := models.PanelEvent{
		Type:        models.EventError,
		Description: msg,
		Metadata:    map[string]any{"operation": operation, "kind": errorKind(err)},
	}
	if aerr := r.events.Append(context.WithoutCancel(ctx), ev); aerr != nil {
		r.log.Warnw("panel_event_append_failed", "err", aerr)
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, device.ErrValidation):
		return "validation"
	case errors.Is(err, device.ErrNoCSRF):
		return "csrf"
	case errors.Is(err, device.ErrProtocol):
		return "protocol"
	case errors.Is(err, device.ErrDecode):
		return "decode"
	case errors.Is(err, device.ErrTransport):
		return "transport"
	default:
		return "other"
	}
}

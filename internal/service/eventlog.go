package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"thermostat_panel/internal/models"
	"thermostat_panel/internal/repository"
)

var (
	// ErrInvalidTimeRange is returned when the filter's From is after its To.
	ErrInvalidTimeRange = errors.New("invalid time range: from must not be after to")
	// ErrUnknownEventType is returned for a type filter outside COMMAND, ERROR and RELOAD.
	ErrUnknownEventType = errors.New("unknown event type")
)

var knownEventTypes = map[string]struct{}{
	models.EventCommand: {},
	models.EventError:   {},
	models.EventReload:  {},
}

// EventLogService reads the panel event log.
type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// List returns events matching f, oldest first.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.PanelEvent, error) {
	f, err := f.normalize()
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, f.From, f.To, f.Type)
}

// normalize converts bounds to UTC, canonicalizes the type and validates both.
func (f LogFilter) normalize() (LogFilter, error) {
	out := LogFilter{
		From: utcOrZero(f.From),
		To:   utcOrZero(f.To),
		Type: strings.ToUpper(strings.TrimSpace(f.Type)),
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return LogFilter{}, ErrInvalidTimeRange
	}
	if out.Type != "" {
		if _, ok := knownEventTypes[out.Type]; !ok {
			return LogFilter{}, fmt.Errorf("%w: %q", ErrUnknownEventType, f.Type)
		}
	}
	return out, nil
}

func utcOrZero(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

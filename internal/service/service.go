package service

import (
	"context"
	"encoding/json"

	"thermostat_panel/internal/device"
	"thermostat_panel/internal/logger"
	"thermostat_panel/internal/models"
	"thermostat_panel/internal/repository"
	"thermostat_panel/internal/view"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Reporter is the single sink for operation failures.
type Reporter interface {
	Report(ctx context.Context, operation string, err error)
}

// Poller refreshes the sensor readings shown on the page.
type Poller interface {
	Poll(ctx context.Context)
}

// Commands submits operator edits to the device. Outcomes are visible only
// through the page: rendered values, the error log, notices and reloads.
type Commands interface {
	SetSetpoint(ctx context.Context)
	SetMode(ctx context.Context)
	UpdatePid(ctx context.Context, kp, ki, kd string, active bool)
	SubmitPid(ctx context.Context)
	SaveConfig(ctx context.Context, formID string)
	FactoryReset(ctx context.Context)
	Reboot(ctx context.Context)
}

// Mirror copies the device configuration into the page.
type Mirror interface {
	FetchConfig(ctx context.Context) (json.RawMessage, error)
	MirrorPid(ctx context.Context)
	ShowConfig(ctx context.Context)
}

// Loader replaces the page with a fresh copy from the device.
type Loader interface {
	Load(ctx context.Context) error
	Reload(ctx context.Context) error
}

// EventLog exposes the panel's command/error history with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.PanelEvent, error)
}

// Page is the operator-facing side of the page model.
type Page interface {
	Snapshot() view.Snapshot
	Subscribe() (<-chan struct{}, func())
	Has(id string) bool
	Field(id string) (string, bool)
	Checked(id string) (bool, bool)
	SetField(id, value string)
	SetChecked(id string, checked bool)
	SetFormField(form, name, value string) error
	FormValues(form string) (map[string]string, bool)
}

// ErrorCounter counts reported failures per operation.
type ErrorCounter interface {
	ErrorReported(operation string)
}

// Deps are the collaborators shared by the synchronization services.
type Deps struct {
	Client   *device.Client
	View     view.View
	Dialog   view.Dialog
	Reporter Reporter
	Events   repository.EventRepo
	Log      *logger.Logger
}

func (d Deps) logger() *logger.Logger {
	if d.Log == nil {
		return logger.Nop()
	}
	return d.Log
}

type Service struct {
	Poller
	Commands
	Mirror
	Loader
	EventLog
	Authorization
	Page
}

// Options carries the optional parts of NewService.
type Options struct {
	Log     *logger.Logger
	Counter ErrorCounter
	Auth    AuthConfig
}

// NewService wires the device client, the page and the repositories into the
// panel services.
func NewService(repos *repository.Repository, client *device.Client, page *view.Page, opts Options) *Service {
	deps := Deps{
		Client: client,
		View:   page,
		Dialog: page,
		Events: repos.EventRepo,
		Log:    opts.Log,
	}
	deps.Reporter = NewErrorReporter(deps, opts.Counter)

	poller := NewStatusPoller(deps)
	mirror := NewConfigMirror(deps)
	loader := NewPageLoader(deps, page, poller)

	return &Service{
		Poller:        poller,
		Commands:      NewCommandSubmitter(deps, poller, loader, mirror),
		Mirror:        mirror,
		Loader:        loader,
		EventLog:      NewEventLogService(repos.EventRepo),
		Authorization: NewAuthService(repos.Auth, opts.Auth),
		Page:          page,
	}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"thermostat_panel/internal/device"
	"thermostat_panel/internal/logger"
	"thermostat_panel/internal/models"
	"thermostat_panel/internal/repository"
	"thermostat_panel/internal/view"
)

const (
	opSetpoint     = "Failed to set temperature"
	opMode         = "Failed to set mode"
	opPid          = "Failed to update PID"
	opSave         = "Failed to save configuration"
	opFactoryReset = "Failed to perform factory reset"
	opReboot       = "Failed to reboot device"
)

const (
	factoryResetPrompt = "Are you sure you want to reset to factory defaults?"
	rebootPrompt       = "Are you sure you want to reboot the device?"

	saveOKMessage      = "Configuration saved successfully"
	saveTextMessage    = "Configuration saved"
	saveUnknownMessage = "Unknown error"
)

// ErrMissingElement is reported when the page lacks an input an operation reads.
var ErrMissingElement = fmt.Errorf("%w: element not found", device.ErrValidation)

// CommandSubmitter sends operator edits to the device. Every request carries
// the CSRF token from the page meta tag; without one nothing is sent.
type CommandSubmitter struct {
	client   *device.Client
	view     view.View
	dialog   view.Dialog
	reporter Reporter
	events   repository.EventRepo
	log      *logger.Logger

	poller Poller
	loader Loader
	mirror Mirror
}

func NewCommandSubmitter(d Deps, poller Poller, loader Loader, mirror Mirror) *CommandSubmitter {
	return &CommandSubmitter{
		client:   d.Client,
		view:     d.View,
		dialog:   d.Dialog,
		reporter: d.Reporter,
		events:   d.Events,
		log:      d.logger(),
		poller:   poller,
		loader:   loader,
		mirror:   mirror,
	}
}

// SetSetpoint posts the setpoint field and refreshes the status on success.
func (s *CommandSubmitter) SetSetpoint(ctx context.Context) {
	value, ok := s.view.Field(view.Setpoint)
	if !ok {
		s.reporter.Report(ctx, opSetpoint, missing(view.Setpoint))
		return
	}
	cmd := models.SetpointCommand{Setpoint: value}
	if s.submitForm(ctx, opSetpoint, pathSetpoint, cmd.Form()) {
		s.poller.Poll(ctx)
	}
}

// SetMode posts the mode field and refreshes the status on success.
func (s *CommandSubmitter) SetMode(ctx context.Context) {
	value, ok := s.view.Field(view.Mode)
	if !ok {
		s.reporter.Report(ctx, opMode, missing(view.Mode))
		return
	}
	cmd := models.ModeCommand{Mode: value}
	if s.submitForm(ctx, opMode, pathMode, cmd.Form()) {
		s.poller.Poll(ctx)
	}
}

// SubmitPid reads the PID inputs from the page and calls UpdatePid.
func (s *CommandSubmitter) SubmitPid(ctx context.Context) {
	gains := make([]string, 0, 3)
	for _, id := range []string{view.Kp, view.Ki, view.Kd} {
		v, ok := s.view.Field(id)
		if !ok {
			s.reporter.Report(ctx, opPid, missing(id))
			return
		}
		gains = append(gains, v)
	}
	active, ok := s.view.Checked(view.PidActive)
	if !ok {
		s.reporter.Report(ctx, opPid, missing(view.PidActive))
		return
	}
	s.UpdatePid(ctx, gains[0], gains[1], gains[2], active)
}

// UpdatePid validates the gains and posts them as JSON inside the "plain"
// form field. Invalid input is reported before any request is made. On
// success the page is reloaded and the PID inputs re-mirrored from /config.
func (s *CommandSubmitter) UpdatePid(ctx context.Context, kp, ki, kd string, active bool) {
	cfg, err := parsePid(kp, ki, kd, active)
	if err != nil {
		s.reporter.Report(ctx, opPid, err)
		return
	}
	payload, err := json.Marshal(cfg)
	if err != nil {
		s.reporter.Report(ctx, opPid, fmt.Errorf("%w: encode pid: %v", device.ErrValidation, err))
		return
	}
	token, err := s.csrf()
	if err != nil {
		s.reporter.Report(ctx, opPid, err)
		return
	}

	res := s.client.PostForm(ctx, pathPid, url.Values{"plain": {string(payload)}}, token)
	if !res.OK() {
		err := res.Err
		if msg := res.DeviceMessage(); msg != "" {
			err = fmt.Errorf("%w: %s", device.ErrProtocol, msg)
		}
		s.reporter.Report(ctx, opPid, err)
		return
	}

	s.log.Infow("pid_update_successful", "kp", cfg.Kp, "ki", cfg.Ki, "kd", cfg.Kd, "active", cfg.Active)
	s.record(ctx, pathPid, map[string]any{"pid": cfg})
	if err := s.loader.Reload(ctx); err != nil {
		return
	}
	s.mirror.MirrorPid(ctx)
}

// SaveConfig posts every field of the form as one flat JSON object.
func (s *CommandSubmitter) SaveConfig(ctx context.Context, formID string) {
	values, ok := s.view.FormValues(formID)
	if !ok {
		s.reporter.Report(ctx, opSave, missing(formID))
		return
	}
	token, err := s.csrf()
	if err != nil {
		s.reporter.Report(ctx, opSave, err)
		return
	}

	res := s.client.PostJSON(ctx, pathSave, models.FullConfig(values), token)
	if !res.OK() {
		s.reporter.Report(ctx, opSave, res.Err)
		return
	}
	// Only keys are recorded; the form carries MQTT credentials.
	s.record(ctx, pathSave, map[string]any{"fields": sortedKeys(values)})

	if res.Kind == device.KindJSON {
		// Non-object JSON leaves out empty and counts as a rejection.
		var out models.SaveResult
		_ = json.Unmarshal(res.Body, &out)
		if out.Status != "ok" {
			msg := out.Message
			if msg == "" {
				msg = saveUnknownMessage
			}
			s.dialog.Alert(ctx, "Error: "+msg)
			return
		}
		s.dialog.Alert(ctx, saveOKMessage)
		s.loader.Reload(ctx)
		return
	}
	s.log.Infow("config_saved", "response", res.Text())
	s.dialog.Alert(ctx, saveTextMessage)
	s.loader.Reload(ctx)
}

// FactoryReset asks for confirmation, then posts /factory_reset and reloads.
func (s *CommandSubmitter) FactoryReset(ctx context.Context) {
	s.confirmAndPost(ctx, factoryResetPrompt, opFactoryReset, pathFactoryReset)
}

// Reboot asks for confirmation, then posts /reboot and reloads.
func (s *CommandSubmitter) Reboot(ctx context.Context) {
	s.confirmAndPost(ctx, rebootPrompt, opReboot, pathReboot)
}

// confirmAndPost reloads whenever the device answered at all; only an
// unreachable device skips the reload.
func (s *CommandSubmitter) confirmAndPost(ctx context.Context, prompt, op, path string) {
	if !s.dialog.Confirm(ctx, prompt) {
		s.log.Infow("command_declined", "path", path)
		return
	}
	token, err := s.csrf()
	if err != nil {
		s.reporter.Report(ctx, op, err)
		return
	}

	res := s.client.Post(ctx, path, token)
	if !res.OK() {
		s.reporter.Report(ctx, op, res.Err)
		if errors.Is(res.Err, device.ErrTransport) {
			return
		}
	} else {
		s.record(ctx, path, nil)
	}
	s.loader.Reload(ctx)
}

func (s *CommandSubmitter) submitForm(ctx context.Context, op, path string, form url.Values) bool {
	token, err := s.csrf()
	if err != nil {
		s.reporter.Report(ctx, op, err)
		return false
	}
	res := s.client.PostForm(ctx, path, form, token)
	if !res.OK() {
		s.reporter.Report(ctx, op, res.Err)
		return false
	}
	s.record(ctx, path, map[string]any{"form": form})
	return true
}

func (s *CommandSubmitter) csrf() (string, error) {
	token, ok := s.view.Meta(view.CSRFMeta)
	if !ok || strings.TrimSpace(token) == "" {
		return "", device.ErrNoCSRF
	}
	return token, nil
}

func (s *CommandSubmitter) record(ctx context.Context, path string, meta map[string]any) {
	s.log.Infow("command_sent", "path", path)
	if s.events == nil {
		return
	}
	ev := models.PanelEvent{
		Type:        models.EventCommand,
		Description: "POST " + path,
	}
	if len(meta) > 0 {
		ev.Metadata = meta
	}
	if err := s.events.Append(context.WithoutCancel(ctx), ev); err != nil {
		s.log.Warnw("panel_event_append_failed", "path", path, "err", err)
	}
}

func parsePid(kp, ki, kd string, active bool) (models.PidConfig, error) {
	var gains [3]float64
	for i, g := range []struct{ name, raw string }{{"kp", kp}, {"ki", ki}, {"kd", kd}} {
		v, err := strconv.ParseFloat(strings.TrimSpace(g.raw), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return models.PidConfig{}, fmt.Errorf("%w: %s must be a number, got %q", device.ErrValidation, g.name, g.raw)
		}
		gains[i] = v
	}
	return models.PidConfig{Kp: gains[0], Ki: gains[1], Kd: gains[2], Active: active}, nil
}

func missing(id string) error {
	return fmt.Errorf("%w: %s", ErrMissingElement, id)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

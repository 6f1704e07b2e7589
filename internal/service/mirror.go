package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"thermostat_panel/internal/device"
	"thermostat_panel/internal/logger"
	"thermostat_panel/internal/models"
	"thermostat_panel/internal/view"
)

const opConfig = "Failed to fetch configuration"

// ConfigMirror reads /config on every call; nothing is cached.
type ConfigMirror struct {
	client   *device.Client
	view     view.View
	reporter Reporter
	log      *logger.Logger
}

func NewConfigMirror(d Deps) *ConfigMirror {
	return &ConfigMirror{
		client:   d.Client,
		view:     d.View,
		reporter: d.Reporter,
		log:      d.logger(),
	}
}

// FetchConfig returns the device configuration as raw JSON.
func (m *ConfigMirror) FetchConfig(ctx context.Context) (json.RawMessage, error) {
	token, _ := m.view.Meta(view.CSRFMeta)
	var raw json.RawMessage
	if err := m.client.Get(ctx, pathConfig, token).Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// MirrorPid copies the "pid" block of the configuration into the PID inputs.
func (m *ConfigMirror) MirrorPid(ctx context.Context) {
	raw, err := m.FetchConfig(ctx)
	if err != nil {
		m.reporter.Report(ctx, opConfig, err)
		return
	}
	var cfg struct {
		Pid *models.PidConfig `json:"pid"`
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		m.reporter.Report(ctx, opConfig, fmt.Errorf("%w: %v", device.ErrDecode, err))
		return
	}
	if cfg.Pid == nil {
		m.reporter.Report(ctx, opConfig, fmt.Errorf("%w: configuration has no pid block", device.ErrDecode))
		return
	}

	m.view.SetField(view.Kp, formatGain(cfg.Pid.Kp))
	m.view.SetField(view.Ki, formatGain(cfg.Pid.Ki))
	m.view.SetField(view.Kd, formatGain(cfg.Pid.Kd))
	m.view.SetChecked(view.PidActive, cfg.Pid.Active)
	m.log.Debugw("pid_mirrored", "kp", cfg.Pid.Kp, "ki", cfg.Pid.Ki, "kd", cfg.Pid.Kd, "active", cfg.Pid.Active)
}

// ShowConfig renders the configuration, indented by two spaces, into configContents.
func (m *ConfigMirror) ShowConfig(ctx context.Context) {
	raw, err := m.FetchConfig(ctx)
	if err != nil {
		m.reporter.Report(ctx, opConfig, err)
		return
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		m.reporter.Report(ctx, opConfig, fmt.Errorf("%w: %v", device.ErrDecode, err))
		return
	}
	m.view.SetText(view.ConfigContents, buf.String())
}

func formatGain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

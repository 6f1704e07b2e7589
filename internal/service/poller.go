package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"thermostat_panel/internal/device"
	"thermostat_panel/internal/logger"
	"thermostat_panel/internal/models"
	"thermostat_panel/internal/view"
)

// DefaultPollInterval is how often the status is refreshed.
const DefaultPollInterval = 10 * time.Second

const (
	pathStatus       = "/status"
	pathSetpoint     = "/setpoint"
	pathMode         = "/mode"
	pathPid          = "/pid"
	pathSave         = "/save"
	pathFactoryReset = "/factory_reset"
	pathReboot       = "/reboot"
	pathConfig       = "/config"
)

const opStatus = "Status update failed"

// StatusPoller fetches /status and renders the readings.
type StatusPoller struct {
	client   *device.Client
	view     view.View
	reporter Reporter
	log      *logger.Logger
}

func NewStatusPoller(d Deps) *StatusPoller {
	return &StatusPoller{
		client:   d.Client,
		view:     d.View,
		reporter: d.Reporter,
		log:      d.logger(),
	}
}

// Poll performs one refresh. On any failure the display is left as it was
// and the failure is reported once.
func (p *StatusPoller) Poll(ctx context.Context) {
	snap, err := decodeStatus(p.client.Get(ctx, pathStatus, ""))
	if err != nil {
		p.reporter.Report(ctx, opStatus, err)
		return
	}
	p.render(snap)
	p.log.Debugw("status_polled", "temperature", snap.Temperature, "humidity", snap.Humidity, "pressure", snap.Pressure)
}

// statusBody mirrors models.StatusSnapshot with every reading optional, so a
// reply missing one of them can be told apart from a zero reading.
type statusBody struct {
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	Pressure    *float64 `json:"pressure"`
	Setpoint    *float64 `json:"setpoint"`
	Enabled     *bool    `json:"enabled"`
	Error       any      `json:"error"`
}

func decodeStatus(res device.Result) (models.StatusSnapshot, error) {
	var body statusBody
	if err := res.Decode(&body); err != nil {
		return models.StatusSnapshot{}, err
	}
	for name, v := range map[string]*float64{
		"temperature": body.Temperature,
		"humidity":    body.Humidity,
		"pressure":    body.Pressure,
	} {
		if v == nil {
			return models.StatusSnapshot{}, fmt.Errorf("%w: status has no %s", device.ErrDecode, name)
		}
	}
	return models.StatusSnapshot{
		Temperature: *body.Temperature,
		Humidity:    *body.Humidity,
		Pressure:    *body.Pressure,
		Setpoint:    body.Setpoint,
		Enabled:     body.Enabled,
		Status:      body.Error,
	}, nil
}

func (p *StatusPoller) render(s models.StatusSnapshot) {
	p.view.SetText(view.Temperature, formatReading(s.Temperature))
	p.view.SetText(view.Humidity, formatReading(s.Humidity))
	p.view.SetText(view.Pressure, formatReading(s.Pressure))

	if s.Setpoint != nil {
		p.view.SetText(view.CurrentSetpoint, formatReading(*s.Setpoint))
	}
	if s.Enabled != nil {
		state := "off"
		if *s.Enabled {
			state = "on"
		}
		p.view.SetText(view.Enabled, state)
	}
	if s.Status != nil {
		p.view.SetText(view.DeviceStatus, fmt.Sprint(s.Status))
	}
}

// formatReading renders v with exactly one decimal digit. Exact ties
// (x.x5 values representable in binary, i.e. quarters) round away from zero.
func formatReading(v float64) string {
	if q := v * 4; q == math.Trunc(q) && math.Mod(math.Abs(q), 2) == 1 {
		v += math.Copysign(0.05, v)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// Scheduler runs a function on a fixed interval until stopped.
type Scheduler struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// StartScheduler calls fn immediately and then every interval. Each call is
// independent: a failing tick never affects the next one.
func StartScheduler(ctx context.Context, interval time.Duration, fn func(context.Context)) *Scheduler {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &Scheduler{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		fn(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}()
	return s
}

// Stop halts the schedule and waits for a running call to return. It is safe
// to call more than once.
func (s *Scheduler) Stop() {
	s.once.Do(s.cancel)
	<-s.done
}

// Done is closed once the schedule has ended.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

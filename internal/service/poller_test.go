package service

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"thermostat_panel/internal/device"
	"thermostat_panel/internal/view"

	"github.com/gin-gonic/gin"
)

func Test_formatReading(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want string
	}{
		{in: 21.54, want: "21.5"},
		{in: 40, want: "40.0"},
		{in: 0, want: "0.0"},
		{in: 0.15, want: "0.1"},
		{in: 0.25, want: "0.3"},
		{in: 22.75, want: "22.8"},
		{in: 1013.25, want: "1013.3"},
		{in: -0.25, want: "-0.3"},
		{in: -3.14, want: "-3.1"},
		{in: 99.96, want: "100.0"},
	}
	for _, c := range cases {
		if got := formatReading(c.in); got != c.want {
			t.Errorf("formatReading(%v) = %q; want %q", c.in, got, c.want)
		}
	}
}

func TestStatusPoller_Poll_RendersOneDecimal(t *testing.T) {
	h := newHarness(t)

	h.poller.Poll(context.Background())

	if r := h.reporter.all(); len(r) != 0 {
		t.Fatalf("unexpected reports: %+v", r)
	}
	for id, want := range map[string]string{
		view.Temperature: "21.5",
		view.Humidity:    "40.0",
		view.Pressure:    "1013.3",
	} {
		if got := h.text(t, id); got != want {
			t.Errorf("%s = %q; want %q", id, got, want)
		}
	}
	reqs := h.dev.find(http.MethodGet, "/status")
	if len(reqs) != 1 {
		t.Fatalf("expected 1 status request, got %d", len(reqs))
	}
	if reqs[0].CSRF != "" {
		t.Fatalf("status poll must not carry a CSRF token, got %q", reqs[0].CSRF)
	}
}

func TestStatusPoller_Poll_ExtendedFields(t *testing.T) {
	h := newHarness(t)
	h.dev.on(http.MethodGet, "/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"temperature": 20, "humidity": 50, "pressure": 1000,
			"setpoint": 22.5, "enabled": false, "error": "sensor fault",
		})
	})

	h.poller.Poll(context.Background())

	if got := h.text(t, view.CurrentSetpoint); got != "22.5" {
		t.Errorf("currentSetpoint = %q", got)
	}
	if got := h.text(t, view.Enabled); got != "off" {
		t.Errorf("enabled = %q", got)
	}
	if got := h.text(t, view.DeviceStatus); got != "sensor fault" {
		t.Errorf("deviceStatus = %q", got)
	}
}

func TestStatusPoller_Poll_FailureKeepsDisplay(t *testing.T) {
	cases := []struct {
		name    string
		handler gin.HandlerFunc
		kind    error
	}{
		{
			name:    "server error",
			handler: func(c *gin.Context) { c.String(http.StatusInternalServerError, "boom") },
			kind:    device.ErrProtocol,
		},
		{
			name:    "malformed json",
			handler: func(c *gin.Context) { c.Data(http.StatusOK, "application/json", []byte(`{"temperature":`)) },
			kind:    device.ErrDecode,
		},
		{
			name:    "missing reading",
			handler: func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"temperature": 20, "humidity": 50}) },
			kind:    device.ErrDecode,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.poller.Poll(context.Background())
			before := h.page.Snapshot().Elements

			h.dev.on(http.MethodGet, "/status", tc.handler)
			h.poller.Poll(context.Background())

			reports := h.reporter.all()
			if len(reports) != 1 {
				t.Fatalf("expected exactly 1 report, got %d: %+v", len(reports), reports)
			}
			if reports[0].operation != opStatus || !errors.Is(reports[0].err, tc.kind) {
				t.Fatalf("unexpected report: %+v", reports[0])
			}
			after := h.page.Snapshot().Elements
			for _, id := range []string{view.Temperature, view.Humidity, view.Pressure} {
				if before[id] != after[id] {
					t.Errorf("%s changed from %q to %q", id, before[id], after[id])
				}
			}
		})
	}
}

func TestStatusPoller_Poll_Unreachable(t *testing.T) {
	h := newHarness(t)
	h.dev.srv.Close()

	h.poller.Poll(context.Background())

	reports := h.reporter.all()
	if len(reports) != 1 || !errors.Is(reports[0].err, device.ErrTransport) {
		t.Fatalf("expected one transport report, got %+v", reports)
	}
	if got := h.text(t, view.Temperature); got != "" {
		t.Fatalf("temperature should stay empty, got %q", got)
	}
}

func TestScheduler_RunsImmediatelyAndRepeats(t *testing.T) {
	var calls atomic.Int32
	s := StartScheduler(context.Background(), 10*time.Millisecond, func(context.Context) {
		calls.Add(1)
	})

	deadline := time.After(2 * time.Second)
	for calls.Load() < 3 {
		select {
		case <-deadline:
			s.Stop()
			t.Fatalf("expected at least 3 calls, got %d", calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	s.Stop()

	stopped := calls.Load()
	time.Sleep(40 * time.Millisecond)
	if got := calls.Load(); got != stopped {
		t.Fatalf("scheduler kept running after Stop: %d -> %d", stopped, got)
	}
	s.Stop() // second Stop must not block or panic
}

func TestScheduler_FailingTickDoesNotSuppressNext(t *testing.T) {
	h := newHarness(t)
	var n atomic.Int32
	h.dev.on(http.MethodGet, "/status", func(c *gin.Context) {
		if n.Add(1) == 1 {
			c.String(http.StatusInternalServerError, "boom")
			return
		}
		c.JSON(http.StatusOK, gin.H{"temperature": 19.96, "humidity": 1, "pressure": 2})
	})

	s := StartScheduler(context.Background(), 20*time.Millisecond, h.poller.Poll)
	defer s.Stop()

	deadline := time.After(2 * time.Second)
	for {
		if v, _ := h.page.Text(view.Temperature); v == "20.0" {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("second tick never rendered; reports=%+v", h.reporter.all())
		case <-time.After(5 * time.Millisecond):
		}
	}
	if r := h.reporter.all(); len(r) == 0 || r[0].operation != opStatus {
		t.Fatalf("first tick failure should be reported, got %+v", r)
	}
}

func TestScheduler_StopsWithParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := StartScheduler(ctx, time.Hour, func(context.Context) {})
	cancel()

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on context cancel")
	}
}

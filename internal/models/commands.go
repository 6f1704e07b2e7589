package models

import "net/url"

// SetpointCommand is posted form-encoded to /setpoint.
type SetpointCommand struct {
	Setpoint string
}

// Form encodes the command as setpoint=<value>.
func (c SetpointCommand) Form() url.Values {
	return url.Values{"setpoint": {c.Setpoint}}
}

// ModeCommand is posted form-encoded to /mode. Values are device-defined.
type ModeCommand struct {
	Mode string
}

// Form encodes the command as mode=<value>.
func (c ModeCommand) Form() url.Values {
	return url.Values{"mode": {c.Mode}}
}

// PidConfig is the PID block of the device configuration.
// Field order is the wire order of the /pid payload.
type PidConfig struct {
	Kp     float64 `json:"kp"`
	Ki     float64 `json:"ki"`
	Kd     float64 `json:"kd"`
	Active bool    `json:"active"`
}

// FullConfig is the flat field map collected from the configuration form.
// The panel never interprets it.
type FullConfig map[string]string

// SaveResult is the body returned by POST /save.
type SaveResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// DeviceError is the error body the device returns on a rejected /pid.
type DeviceError struct {
	Error string `json:"error"`
}

package models

// StatusSnapshot is one reading returned by the device on GET /status.
// Setpoint, Enabled and Status are extras newer firmware sends; older builds omit them.
type StatusSnapshot struct {
	Temperature float64  `json:"temperature"`
	Humidity    float64  `json:"humidity"`
	Pressure    float64  `json:"pressure"`
	Setpoint    *float64 `json:"setpoint,omitempty"`
	Enabled     *bool    `json:"enabled,omitempty"`
	Status      any      `json:"error,omitempty"` // device status code or message
}

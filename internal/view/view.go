// Package view models the control page: display elements, input fields,
// forms, meta tags and dialogs, addressed by element ID.
package view

import "context"

// Element IDs the panel reads from or writes to.
const (
	ErrorLog       = "errorLog"
	Temperature    = "temperature"
	Humidity       = "humidity"
	Pressure       = "pressure"
	Setpoint       = "setpoint"
	Mode           = "mode"
	ConfigForm     = "configForm"
	Kp             = "kp"
	Ki             = "ki"
	Kd             = "kd"
	PidActive      = "pidActive"
	ConfigContents = "configContents"

	CurrentSetpoint = "currentSetpoint"
	Enabled         = "enabled"
	DeviceStatus    = "deviceStatus"

	CSRFMeta = "csrf-token"
)

// View is the binding between synchronization logic and the page.
type View interface {
	// Has reports whether an element with this ID exists on the page.
	Has(id string) bool
	// Field returns the current value of an input field.
	Field(id string) (string, bool)
	// Checked returns the state of a checkbox.
	Checked(id string) (bool, bool)
	// FormValues returns every named field of a form.
	FormValues(id string) (map[string]string, bool)
	// Meta returns the content of a <meta name=...> tag.
	Meta(name string) (string, bool)

	SetText(id, text string)
	SetField(id, value string)
	SetChecked(id string, checked bool)
}

// Document is a View that can be replaced wholesale, the way a reload does.
type Document interface {
	View
	Reset()
	SetMeta(name, content string)
}

// Dialog shows modal messages to the operator.
type Dialog interface {
	Alert(ctx context.Context, msg string)
	Confirm(ctx context.Context, msg string) bool
}

type confirmKey struct{}

// WithConfirmation records the operator's answer to the next confirmation
// prompt issued under ctx.
func WithConfirmation(ctx context.Context, answer bool) context.Context {
	return context.WithValue(ctx, confirmKey{}, answer)
}

// Confirmation returns the answer stored by WithConfirmation. Absent means declined.
func Confirmation(ctx context.Context) bool {
	v, _ := ctx.Value(confirmKey{}).(bool)
	return v
}

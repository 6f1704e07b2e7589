package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"thermostat_panel/internal/view"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK        = "ok"
	statusPolled    = "polled"
	statusReloaded  = "reloaded"
	statusSubmitted = "submitted"
	statusDeclined  = "declined"

	errUnknownElement  = "unknown element: "
	errUnknownForm     = "unknown form: "
	errFetchConfig     = "failed to fetch configuration"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondWithStatusAndPage answers with the status and the page as it is
// after the operation; that page is the only outcome operations have.
func (h *Handler) respondWithStatusAndPage(c *gin.Context, status string) {
	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"page":   h.services.Snapshot(),
	})
}

// operationContext detaches the device exchange from the HTTP request: a
// request already sent to the device is never abandoned halfway.
func operationContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

// bindOptionalJSON is bindJSONOrBadRequest that accepts an empty body.
func (h *Handler) bindOptionalJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	if h.log != nil {
		h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
	return false
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get the page
// @Description  Display elements, inputs, forms and notices as currently shown.
// @Tags         panel
// @Produce      json
// @Success      200  {object}  view.Snapshot
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/panel/page [get]
// @Security     BearerAuth
func (h *Handler) getPage(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Snapshot())
}

// FieldsRequest sets input fields and checkboxes by element ID.
type FieldsRequest struct {
	Fields  map[string]string `json:"fields"`
	Checked map[string]bool   `json:"checked"`
}

// @Summary      Edit inputs
// @Tags         panel
// @Accept       json
// @Produce      json
// @Param        body  body      FieldsRequest  true  "Values by element ID"
// @Success      200   {object}  view.Snapshot
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/panel/fields [put]
// @Security     BearerAuth
func (h *Handler) putFields(c *gin.Context) {
	var req FieldsRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	if !h.applyFields(c, req) {
		return
	}
	c.JSON(http.StatusOK, h.services.Snapshot())
}

// applyFields validates every ID before writing any of them.
func (h *Handler) applyFields(c *gin.Context, req FieldsRequest) bool {
	for id := range req.Fields {
		if _, ok := h.services.Field(id); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": errUnknownElement + id})
			return false
		}
	}
	for id := range req.Checked {
		if _, ok := h.services.Checked(id); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": errUnknownElement + id})
			return false
		}
	}
	for id, v := range req.Fields {
		h.services.SetField(id, v)
	}
	for id, v := range req.Checked {
		h.services.SetChecked(id, v)
	}
	return true
}

// @Summary      Edit a form
// @Tags         panel
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Form ID"  example(configForm)
// @Param        body  body      map[string]string  true  "Field values by name"
// @Success      200   {object}  view.Snapshot
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/panel/forms/{id} [put]
// @Security     BearerAuth
func (h *Handler) putForm(c *gin.Context) {
	var values map[string]string
	if ok := h.bindJSONOrBadRequest(c, &values); !ok {
		return
	}
	if !h.applyForm(c, c.Param("id"), values) {
		return
	}
	c.JSON(http.StatusOK, h.services.Snapshot())
}

func (h *Handler) applyForm(c *gin.Context, form string, values map[string]string) bool {
	if _, ok := h.services.FormValues(form); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errUnknownForm + form})
		return false
	}
	for name, v := range values {
		if err := h.services.SetFormField(form, name, v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return false
		}
	}
	return true
}

// @Summary      Refresh the status readings
// @Tags         panel
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, page"
// @Router       /api/v1/panel/poll [post]
// @Security     BearerAuth
func (h *Handler) poll(c *gin.Context) {
	h.services.Poll(operationContext(c))
	h.respondWithStatusAndPage(c, statusPolled)
}

// @Summary      Reload the page from the device
// @Tags         panel
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, page"
// @Router       /api/v1/panel/reload [post]
// @Security     BearerAuth
func (h *Handler) reload(c *gin.Context) {
	h.services.Reload(operationContext(c))
	h.respondWithStatusAndPage(c, statusReloaded)
}

// SetpointRequest optionally fills the setpoint input before submitting it.
type SetpointRequest struct {
	Setpoint *string `json:"setpoint" example:"22.5"`
}

// @Summary      Submit the setpoint
// @Description  Without a body the current setpoint input is sent.
// @Tags         panel
// @Accept       json
// @Produce      json
// @Param        body  body      SetpointRequest  false  "New setpoint"
// @Success      200   {object}  map[string]interface{}  "status, page"
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/panel/setpoint [post]
// @Security     BearerAuth
func (h *Handler) setSetpoint(c *gin.Context) {
	var req SetpointRequest
	if ok := h.bindOptionalJSON(c, &req); !ok {
		return
	}
	if req.Setpoint != nil {
		h.services.SetField(view.Setpoint, *req.Setpoint)
	}
	h.services.SetSetpoint(operationContext(c))
	h.respondWithStatusAndPage(c, statusSubmitted)
}

// ModeRequest optionally fills the mode select before submitting it.
type ModeRequest struct {
	// Device mode. The thermostat firmware accepts "on" and "off".
	Mode *string `json:"mode" example:"on"`
}

// @Summary      Submit the mode
// @Tags         panel
// @Accept       json
// @Produce      json
// @Param        body  body      ModeRequest  false  "New mode"
// @Success      200   {object}  map[string]interface{}  "status, page"
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/panel/mode [post]
// @Security     BearerAuth
func (h *Handler) setMode(c *gin.Context) {
	var req ModeRequest
	if ok := h.bindOptionalJSON(c, &req); !ok {
		return
	}
	if req.Mode != nil {
		h.services.SetField(view.Mode, *req.Mode)
	}
	h.services.SetMode(operationContext(c))
	h.respondWithStatusAndPage(c, statusSubmitted)
}

// PidRequest carries the gains as typed by the operator; they are
// validated by the panel before anything is sent.
type PidRequest struct {
	Kp     *string `json:"kp" example:"2.5"`
	Ki     *string `json:"ki" example:"0.1"`
	Kd     *string `json:"kd" example:"1"`
	Active *bool   `json:"active" example:"true"`
}

// @Summary      Submit PID gains
// @Description  Fields present in the body overwrite the PID inputs; the inputs are then submitted.
// @Tags         panel
// @Accept       json
// @Produce      json
// @Param        body  body      PidRequest  false  "Gains"
// @Success      200   {object}  map[string]interface{}  "status, page"
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/panel/pid [post]
// @Security     BearerAuth
func (h *Handler) updatePid(c *gin.Context) {
	var req PidRequest
	if ok := h.bindOptionalJSON(c, &req); !ok {
		return
	}
	for id, v := range map[string]*string{view.Kp: req.Kp, view.Ki: req.Ki, view.Kd: req.Kd} {
		if v != nil {
			h.services.SetField(id, *v)
		}
	}
	if req.Active != nil {
		h.services.SetChecked(view.PidActive, *req.Active)
	}
	h.services.SubmitPid(operationContext(c))
	h.respondWithStatusAndPage(c, statusSubmitted)
}

// SaveRequest optionally edits the form before it is saved.
type SaveRequest struct {
	Values map[string]string `json:"values"`
}

// @Summary      Save the configuration form
// @Tags         panel
// @Accept       json
// @Produce      json
// @Param        form  query     string       false  "Form ID"  default(configForm)
// @Param        body  body      SaveRequest  false  "Field values"
// @Success      200   {object}  map[string]interface{}  "status, page"
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/panel/save [post]
// @Security     BearerAuth
func (h *Handler) saveConfig(c *gin.Context) {
	var req SaveRequest
	if ok := h.bindOptionalJSON(c, &req); !ok {
		return
	}
	form := c.DefaultQuery("form", view.ConfigForm)
	if !h.applyForm(c, form, req.Values) {
		return
	}
	h.services.SaveConfig(operationContext(c), form)
	h.respondWithStatusAndPage(c, statusSubmitted)
}

// ConfirmRequest answers the confirmation prompt of a destructive command.
type ConfirmRequest struct {
	Confirm bool `json:"confirm" example:"true"`
}

// @Summary      Factory reset
// @Description  Nothing is sent unless confirm is true.
// @Tags         panel
// @Accept       json
// @Produce      json
// @Param        body  body      ConfirmRequest  true  "Confirmation"
// @Success      200   {object}  map[string]interface{}  "status, page"
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/panel/factory-reset [post]
// @Security     BearerAuth
func (h *Handler) factoryReset(c *gin.Context) {
	h.confirmed(c, h.services.FactoryReset)
}

// @Summary      Reboot the device
// @Description  Nothing is sent unless confirm is true.
// @Tags         panel
// @Accept       json
// @Produce      json
// @Param        body  body      ConfirmRequest  true  "Confirmation"
// @Success      200   {object}  map[string]interface{}  "status, page"
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/panel/reboot [post]
// @Security     BearerAuth
func (h *Handler) reboot(c *gin.Context) {
	h.confirmed(c, h.services.Reboot)
}

func (h *Handler) confirmed(c *gin.Context, op func(context.Context)) {
	var req ConfirmRequest
	if ok := h.bindOptionalJSON(c, &req); !ok {
		return
	}
	op(view.WithConfirmation(operationContext(c), req.Confirm))
	if !req.Confirm {
		h.respondWithStatusAndPage(c, statusDeclined)
		return
	}
	h.respondWithStatusAndPage(c, statusSubmitted)
}

// @Summary      Fetch the device configuration
// @Description  Raw JSON as returned by the device. Nothing is cached.
// @Tags         panel
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/panel/config [get]
// @Security     BearerAuth
func (h *Handler) getConfig(c *gin.Context) {
	raw, err := h.services.FetchConfig(operationContext(c))
	if err != nil {
		h.logAndJSONError(c, http.StatusBadGateway, errFetchConfig, "config_fetch_failed", err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// @Summary      Show the configuration on the page
// @Description  Renders the configuration into configContents and refreshes the PID inputs.
// @Tags         panel
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, page"
// @Router       /api/v1/panel/config [post]
// @Security     BearerAuth
func (h *Handler) showConfig(c *gin.Context) {
	ctx := operationContext(c)
	h.services.ShowConfig(ctx)
	h.services.MirrorPid(ctx)
	h.respondWithStatusAndPage(c, statusOK)
}

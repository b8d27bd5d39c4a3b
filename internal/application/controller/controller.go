// Package controller implements the supplier invoice form controller.
// Decisions are delegated to the pure form package; this package turns the
// resulting state into calls on the injected rendering surface.
package controller

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/invoice-portal/internal/application/port"
	"github.com/garyjia/invoice-portal/internal/domain/entity"
	"github.com/garyjia/invoice-portal/internal/domain/form"
	"github.com/garyjia/invoice-portal/pkg/utils"
)

// textFields get the error highlight when they fail; file slots only show text
var textFields = map[form.Field]bool{
	form.FieldXMLContent:    true,
	form.FieldUUID:          true,
	form.FieldPurchaseOrder: true,
	form.FieldGoodsReceipt:  true,
}

// SubmitResult describes one submit attempt
type SubmitResult struct {
	Validation form.Result
	Payload    *entity.SubmissionPayload
}

// Controller owns the state of one form. It is not safe for concurrent use;
// callers serialize events the way a browser event loop does.
type Controller struct {
	state     *form.State
	checker   *form.Checker
	elements  Elements
	renderer  port.Renderer
	inputs    port.InputSurface
	submitter port.Submitter
	logger    *zap.Logger
	routes    map[routeKey]handlerFunc
}

// New creates a Controller with default state. Call Init to render it.
func New(
	elements Elements,
	checker *form.Checker,
	renderer port.Renderer,
	inputs port.InputSurface,
	submitter port.Submitter,
	logger *zap.Logger,
) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		state:     form.NewState(),
		checker:   checker,
		elements:  elements,
		renderer:  renderer,
		inputs:    inputs,
		submitter: submitter,
		logger:    logger,
	}
	c.routes = c.buildRoutes()
	return c
}

// State returns a copy of the current state
func (c *Controller) State() form.State {
	return *c.state
}

// Init renders the default method and XML sub-mode, as on page load
func (c *Controller) Init() {
	c.renderMethod()
	c.renderXMLInputType()
	c.clearAllErrors()
}

// SelectMethod activates exactly one method and clears every shown error
func (c *Controller) SelectMethod(method form.Method) error {
	if !method.IsValid() {
		return fmt.Errorf("unknown method %q", method)
	}
	c.state.Method = method
	c.renderMethod()
	c.clearAllErrors()

	c.logger.Debug("Method selected", zap.String("method", method.String()))
	return nil
}

// SelectXMLInputType switches between XML upload and pasted XML
func (c *Controller) SelectXMLInputType(inputType form.XMLInputType) error {
	if !inputType.IsValid() {
		return fmt.Errorf("unknown XML input type %q", inputType)
	}
	c.state.XMLInputType = inputType
	c.renderXMLInputType()
	c.hideError(form.FieldXMLFile)
	c.hideError(form.FieldXMLContent)

	c.logger.Debug("XML input type selected", zap.String("type", inputType.String()))
	return nil
}

// AcceptFile validates a file offered to slot and stores it on success.
// A nil file is ignored. On failure the picker is cleared but a previously
// accepted file stays stored and labelled.
func (c *Controller) AcceptFile(slot form.Slot, file *entity.FileHandle) *form.FieldError {
	if !slot.IsValid() {
		c.logger.Warn("File offered to unknown slot", zap.String("slot", slot.String()))
		return nil
	}
	field := form.SlotField(slot)
	c.hideError(field)

	if file == nil {
		return nil
	}

	if fe := c.checker.CheckFile(slot, file); fe != nil {
		c.showError(fe)
		c.renderer.ClearValue(c.elements.FileInputs[slot])
		c.logger.Debug("File rejected",
			zap.String("slot", slot.String()),
			zap.String("name", file.Name),
			zap.Int64("size", file.Size),
			zap.Error(fe))
		return fe
	}

	accepted := *file
	c.state.Files.Set(slot, &accepted)

	// the stored handle keeps the name as offered; only the label is cleaned
	label := c.checker.Messages().AcceptedFile(utils.SanitizeFileName(accepted.Name))
	c.renderer.SetText(c.elements.FileLabels[slot], label)
	zone := c.elements.UploadZones[slot]
	c.renderer.SetStyle(zone, StyleBorderColor, successBorderColor)
	c.renderer.SetStyle(zone, StyleBackground, successBackground)

	c.logger.Debug("File accepted",
		zap.String("slot", slot.String()),
		zap.String("name", accepted.Name),
		zap.Int64("size", accepted.Size))
	return nil
}

// DragOver shows the drop cue on the slot's zone
func (c *Controller) DragOver(slot form.Slot) {
	c.renderer.AddClass(c.elements.UploadZones[slot], ClassDragOver)
}

// DragLeave removes the drop cue
func (c *Controller) DragLeave(slot form.Slot) {
	c.renderer.RemoveClass(c.elements.UploadZones[slot], ClassDragOver)
}

// Drop removes the drop cue and accepts the first dropped file, if any
func (c *Controller) Drop(slot form.Slot, files []entity.FileHandle) *form.FieldError {
	c.DragLeave(slot)
	if len(files) == 0 {
		return nil
	}
	return c.AcceptFile(slot, &files[0])
}

// ClickZone opens the file picker bound to the slot
func (c *Controller) ClickZone(slot form.Slot) {
	c.renderer.OpenPicker(c.elements.FileInputs[slot])
}

// PickerChanged accepts the first file selected in the slot's picker
func (c *Controller) PickerChanged(slot form.Slot, files []entity.FileHandle) *form.FieldError {
	if len(files) == 0 {
		return nil
	}
	return c.AcceptFile(slot, &files[0])
}

// ValidateUUIDField is the live check run on every keystroke and on blur.
// An empty field is never flagged here, only on submit.
func (c *Controller) ValidateUUIDField() *form.FieldError {
	fe := c.checker.CheckUUIDField(c.inputs.Value(c.elements.UUIDInput))
	if fe == nil {
		c.hideError(form.FieldUUID)
		c.renderer.RemoveClass(c.elements.UUIDInput, ClassError)
		return nil
	}
	c.showError(fe)
	c.renderer.AddClass(c.elements.UUIDInput, ClassError)
	return fe
}

// ValidateForm runs the full check and renders every failure at once
func (c *Controller) ValidateForm() form.Result {
	result := c.checker.Validate(c.state, c.values())
	for _, fe := range result.Errors {
		c.showError(fe)
		if textFields[fe.Field] {
			c.renderer.AddClass(c.elements.Controls[fe.Field], ClassError)
		}
	}
	return result
}

// HandleSubmit validates the form and, when valid, hands the payload to the
// submitter. Validation failures are rendered, not returned; the error is
// reserved for the submitter.
func (c *Controller) HandleSubmit(ctx context.Context) (*SubmitResult, error) {
	c.clearAllErrors()

	result := &SubmitResult{Validation: c.ValidateForm()}
	if !result.Validation.Valid {
		c.logger.Debug("Submission blocked by validation", zap.Int("errors", len(result.Validation.Errors)))
		return result, nil
	}

	result.Payload = form.BuildPayload(c.state, c.values())
	if err := c.submitter.Submit(ctx, result.Payload); err != nil {
		c.logger.Error("Failed to submit invoice", zap.String("method", result.Payload.Method), zap.Error(err))
		c.renderer.Acknowledge(c.checker.Messages().SubmitFailed())
		return result, fmt.Errorf("failed to submit invoice: %w", err)
	}

	c.renderer.Acknowledge(c.checker.Messages().Submitted())
	c.logger.Info("Invoice submitted",
		zap.String("method", result.Payload.Method),
		zap.String("purchase_order", result.Payload.PurchaseOrderNumber))
	return result, nil
}

// HandleReset restores the defaults and clears every control
func (c *Controller) HandleReset() {
	c.state.Reset()

	c.renderMethod()
	c.renderXMLInputType()
	c.hideError(form.FieldXMLFile)
	c.hideError(form.FieldXMLContent)

	for _, id := range c.elements.inputControls() {
		c.renderer.ClearValue(id)
	}

	for _, slot := range form.Slots {
		c.renderer.SetText(c.elements.FileLabels[slot], c.checker.Messages().Placeholder(slot))
		zone := c.elements.UploadZones[slot]
		c.renderer.SetStyle(zone, StyleBorderColor, "")
		c.renderer.SetStyle(zone, StyleBackground, "")
	}

	c.renderAlternatives()
	c.clearAllErrors()

	c.logger.Debug("Form reset")
}

// ToggleAlternativeOptions shows or hides the alternative options panel
func (c *Controller) ToggleAlternativeOptions() {
	c.state.AlternativesShown = !c.state.AlternativesShown
	c.renderAlternatives()
}

func (c *Controller) values() form.Values {
	return form.Values{
		XMLContent:    c.inputs.Value(c.elements.XMLTextarea),
		UUID:          c.inputs.Value(c.elements.UUIDInput),
		PurchaseOrder: c.inputs.Value(c.elements.PurchaseOrderInput),
		GoodsReceipt:  c.inputs.Value(c.elements.GoodsReceiptInput),
	}
}

func (c *Controller) renderMethod() {
	for _, m := range form.Methods {
		c.setActive(c.elements.MethodButtons[m], m == c.state.Method)
		c.setActive(c.elements.MethodPanels[m], m == c.state.Method)
	}
}

func (c *Controller) renderXMLInputType() {
	file := c.state.XMLInputType == form.XMLInputFile
	c.setActive(c.elements.XMLFileToggle, file)
	c.setActive(c.elements.XMLPasteToggle, !file)
	c.setActive(c.elements.XMLFileGroup, file)
	c.setActive(c.elements.XMLPasteGroup, !file)
}

func (c *Controller) renderAlternatives() {
	if c.state.AlternativesShown {
		c.renderer.AddClass(c.elements.AlternativeOptions, ClassShow)
	} else {
		c.renderer.RemoveClass(c.elements.AlternativeOptions, ClassShow)
	}
	c.setActive(c.elements.ToggleOptionsButton, c.state.AlternativesShown)
}

func (c *Controller) setActive(id string, active bool) {
	if active {
		c.renderer.AddClass(id, ClassActive)
	} else {
		c.renderer.RemoveClass(id, ClassActive)
	}
}

func (c *Controller) showError(fe *form.FieldError) {
	id := c.elements.ErrorSlots[fe.Field]
	c.renderer.SetText(id, fe.Message)
	c.renderer.AddClass(id, ClassShow)
}

func (c *Controller) hideError(field form.Field) {
	id := c.elements.ErrorSlots[field]
	c.renderer.SetText(id, "")
	c.renderer.RemoveClass(id, ClassShow)
}

func (c *Controller) clearAllErrors() {
	for _, field := range form.Fields {
		c.hideError(field)
	}
	for _, field := range form.Fields {
		c.renderer.RemoveClass(c.elements.Controls[field], ClassError)
	}
}

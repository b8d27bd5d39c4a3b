package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/invoice-portal/internal/domain/entity"
	"github.com/garyjia/invoice-portal/internal/domain/form"
)

func TestEventType_IsValid(t *testing.T) {
	for _, et := range []EventType{EventClick, EventChange, EventInput, EventBlur, EventDragOver, EventDragLeave, EventDrop, EventSubmit} {
		assert.True(t, et.IsValid(), string(et))
	}
	assert.False(t, EventType("keydown").IsValid())
}

func TestController_Dispatch(t *testing.T) {
	ctx := context.Background()
	e := DefaultElements()

	t.Run("method buttons", func(t *testing.T) {
		c, _, _ := newTestController(t)
		_, err := c.Dispatch(ctx, Event{Type: EventClick, Target: "pdfMethodBtn"})
		require.NoError(t, err)
		assert.Equal(t, form.MethodPDF, c.State().Method)
	})

	t.Run("xml sub-mode toggles", func(t *testing.T) {
		c, _, _ := newTestController(t)
		_, err := c.Dispatch(ctx, Event{Type: EventClick, Target: "xmlPasteToggle"})
		require.NoError(t, err)
		assert.Equal(t, form.XMLInputPaste, c.State().XMLInputType)

		_, err = c.Dispatch(ctx, Event{Type: EventClick, Target: "xmlFileToggle"})
		require.NoError(t, err)
		assert.Equal(t, form.XMLInputFile, c.State().XMLInputType)
	})

	t.Run("drop on zone", func(t *testing.T) {
		c, m, _ := newTestController(t)
		_, err := c.Dispatch(ctx, Event{Type: EventDragOver, Target: "pdfUploadZone"})
		require.NoError(t, err)
		assert.True(t, m.HasClass("pdfUploadZone", ClassDragOver))

		_, err = c.Dispatch(ctx, Event{Type: EventDrop, Target: "pdfUploadZone", Files: []entity.FileHandle{{Name: "f.pdf", Size: 3}}})
		require.NoError(t, err)
		assert.False(t, m.HasClass("pdfUploadZone", ClassDragOver))
		require.NotNil(t, c.State().Files.PDF)
	})

	t.Run("picker change", func(t *testing.T) {
		c, _, _ := newTestController(t)
		_, err := c.Dispatch(ctx, Event{Type: EventChange, Target: "xmlFileInput", Files: []entity.FileHandle{{Name: "f.xml", Size: 3}}})
		require.NoError(t, err)
		require.NotNil(t, c.State().Files.XML)
	})

	t.Run("uuid input and blur", func(t *testing.T) {
		c, m, _ := newTestController(t)
		m.SetValue(e.UUIDInput, "xyz")
		_, err := c.Dispatch(ctx, Event{Type: EventInput, Target: "uuidInput"})
		require.NoError(t, err)
		assert.True(t, m.HasClass("uuidInput", ClassError))

		m.SetValue(e.UUIDInput, "")
		_, err = c.Dispatch(ctx, Event{Type: EventBlur, Target: "uuidInput"})
		require.NoError(t, err)
		assert.False(t, m.HasClass("uuidInput", ClassError))
	})

	t.Run("submit returns the result", func(t *testing.T) {
		c, _, _ := newTestController(t)
		result, err := c.Dispatch(ctx, Event{Type: EventSubmit, Target: "invoiceForm"})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.False(t, result.Validation.Valid)
	})

	t.Run("cancel resets", func(t *testing.T) {
		c, _, _ := newTestController(t)
		require.NoError(t, c.SelectMethod(form.MethodUUID))
		_, err := c.Dispatch(ctx, Event{Type: EventClick, Target: "cancelBtn"})
		require.NoError(t, err)
		assert.Equal(t, form.MethodXML, c.State().Method)
	})

	t.Run("alternative options toggle", func(t *testing.T) {
		c, _, _ := newTestController(t)
		_, err := c.Dispatch(ctx, Event{Type: EventClick, Target: "toggleOptionsBtn"})
		require.NoError(t, err)
		assert.True(t, c.State().AlternativesShown)
	})

	t.Run("unrouted event is accepted", func(t *testing.T) {
		c, m, _ := newTestController(t)
		result, err := c.Dispatch(ctx, Event{Type: EventInput, Target: "purchaseOrderInput"})
		require.NoError(t, err)
		assert.Nil(t, result)
		assert.Empty(t, m.Drain())
	})

	t.Run("unknown event type", func(t *testing.T) {
		c, _, _ := newTestController(t)
		_, err := c.Dispatch(ctx, Event{Type: "keydown", Target: "uuidInput"})
		assert.ErrorIs(t, err, ErrUnknownEvent)
	})
}

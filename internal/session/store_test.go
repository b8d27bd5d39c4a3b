package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/invoice-portal/internal/application/controller"
	"github.com/garyjia/invoice-portal/internal/application/port"
	"github.com/garyjia/invoice-portal/internal/domain/entity"
	"github.com/garyjia/invoice-portal/internal/domain/form"
	"github.com/garyjia/invoice-portal/internal/interfaces/surface"
)

func newTestStore(cfg Config) *Store {
	submitter := port.SubmitterFunc(func(context.Context, *entity.SubmissionPayload) error { return nil })
	return NewStore(cfg, controller.DefaultElements(), form.NewChecker(0, nil), submitter, zap.NewNop())
}

func strPtr(s string) *string { return &s }

func TestStore_CreateRendersDefaults(t *testing.T) {
	st := newTestStore(Config{})

	s, ops, err := st.Create()

	require.NoError(t, err)
	assert.NotEmpty(t, s.ID.String())
	assert.Contains(t, ops, surface.Op{Kind: surface.OpAddClass, Target: "xmlMethodBtn", Name: "active"})
	assert.Contains(t, ops, surface.Op{Kind: surface.OpAddClass, Target: "xmlFileGroup", Name: "active"})
	assert.Equal(t, 1, st.Len())
}

func TestStore_GetAndDelete(t *testing.T) {
	st := newTestStore(Config{})
	s, _, err := st.Create()
	require.NoError(t, err)

	got, err := st.Get(s.ID.String())
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = st.Get("not-a-uuid")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, st.Delete(s.ID.String()))
	_, err = st.Get(s.ID.String())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, st.Delete(s.ID.String()), ErrSessionNotFound)
}

func TestStore_MaxSessions(t *testing.T) {
	st := newTestStore(Config{MaxSessions: 1})
	_, _, err := st.Create()
	require.NoError(t, err)

	_, _, err = st.Create()
	assert.ErrorIs(t, err, ErrTooManySessions)
}

func TestStore_Sweep(t *testing.T) {
	st := newTestStore(Config{TTL: time.Minute})
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }

	old, _, err := st.Create()
	require.NoError(t, err)
	now = now.Add(50 * time.Second)
	fresh, _, err := st.Create()
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	assert.Equal(t, 1, st.Sweep())

	_, err = st.Get(old.ID.String())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = st.Get(fresh.ID.String())
	assert.NoError(t, err)
}

func TestStore_RunStopsOnCancel(t *testing.T) {
	st := newTestStore(Config{TTL: time.Minute, SweepInterval: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		st.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSession_Handle(t *testing.T) {
	st := newTestStore(Config{})
	s, _, err := st.Create()
	require.NoError(t, err)
	ctx := context.Background()

	out, err := s.Handle(ctx, controller.Event{Type: controller.EventInput, Target: "uuidInput", Value: strPtr("abc")})
	require.NoError(t, err)
	assert.Contains(t, out.Ops, surface.Op{Kind: surface.OpAddClass, Target: "uuidInput", Name: "error"})
	assert.Nil(t, out.Submit)

	_, err = s.Handle(ctx, controller.Event{Type: controller.EventClick, Target: "pdfMethodBtn"})
	require.NoError(t, err)
	_, err = s.Handle(ctx, controller.Event{Type: controller.EventChange, Target: "pdfFileInput", Files: []entity.FileHandle{{Name: "factura.pdf", Size: 2 << 20}}})
	require.NoError(t, err)
	_, err = s.Handle(ctx, controller.Event{Type: controller.EventInput, Target: "purchaseOrderInput", Value: strPtr("PO1")})
	require.NoError(t, err)
	_, err = s.Handle(ctx, controller.Event{Type: controller.EventInput, Target: "goodsReceiptInput", Value: strPtr("GR1")})
	require.NoError(t, err)

	out, err = s.Handle(ctx, controller.Event{Type: controller.EventSubmit, Target: "invoiceForm"})
	require.NoError(t, err)
	require.NotNil(t, out.Submit)
	assert.True(t, out.Submit.Validation.Valid)
	assert.Equal(t, "factura.pdf", out.Submit.Payload.PDFFile.Name)
	assert.Equal(t, form.MethodPDF, s.State().Method)
}

func TestSession_HandleIgnoresUnknownTargets(t *testing.T) {
	st := newTestStore(Config{})
	s, _, err := st.Create()
	require.NoError(t, err)
	ctx := context.Background()
	tracked := s.mirror.Len()

	for i := 0; i < 50; i++ {
		target := fmt.Sprintf("rogue-%d", i)
		_, err := s.Handle(ctx, controller.Event{Type: controller.EventInput, Target: target, Value: strPtr("x")})
		require.NoError(t, err)
		_, err = s.Handle(ctx, controller.Event{Type: controller.EventChange, Target: target, Files: []entity.FileHandle{{Name: "a.pdf", Size: 1}}})
		require.NoError(t, err)
	}
	assert.Equal(t, tracked, s.mirror.Len())

	_, err = s.Handle(ctx, controller.Event{Type: controller.EventInput, Target: "purchaseOrderInput", Value: strPtr("PO1")})
	require.NoError(t, err)
	assert.Equal(t, "PO1", s.mirror.Value("purchaseOrderInput"))
}

func TestSession_HandleSerializesEvents(t *testing.T) {
	st := newTestStore(Config{})
	s, _, err := st.Create()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Handle(context.Background(), controller.Event{Type: controller.EventClick, Target: "toggleOptionsBtn"})
		}()
	}
	wg.Wait()

	assert.False(t, s.State().AlternativesShown, "an even number of toggles leaves the panel hidden")
}

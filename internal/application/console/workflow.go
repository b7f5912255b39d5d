package console

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/application/ports"
	"github.com/jhoicas/canastillas-console/internal/domain"
	"github.com/jhoicas/canastillas-console/pkg/logger"
)

// WorkflowState estado del modal de mutación.
type WorkflowState string

const (
	StateClosed           WorkflowState = "closed"
	StateCreating         WorkflowState = "creating"
	StateEditing          WorkflowState = "editing"
	StateSubmitting       WorkflowState = "submitting"
	StateError            WorkflowState = "error"
	StateConfirmingDelete WorkflowState = "confirming_delete"
	StateDeleting         WorkflowState = "deleting"
)

// workflowSpec lo que cambia entre pantallas: textos, carga del formulario y endpoints.
type workflowSpec[Form any] struct {
	screen string

	createTitle, createSubmit string
	editTitle, editSubmit     string

	// textos por defecto cuando el servidor no envía mensaje
	createdMsg string
	updatedMsg string
	deletedMsg func(id string) string

	submitErr   string
	loadEditErr string
	deleteErr   string

	blank func() Form
	// prepare carga auxiliar antes de abrir el modal (opcional)
	prepare  func(ctx context.Context) error
	checkID  func(id string) error
	loadEdit func(ctx context.Context, id string) (Form, error)
	validate func(f Form, editing bool) error
	create   func(ctx context.Context, f Form) (string, error)
	update   func(ctx context.Context, id string, f Form) (string, error)
	remove   func(ctx context.Context, id string) (string, error)

	// refresh recarga la colección tras una mutación exitosa, después de refreshDelay.
	refresh      func(ctx context.Context) error
	refreshDelay time.Duration
}

// Workflow máquina de estados del modal de alta/edición/eliminación.
//
//	Closed → Creating → Submitting → Closed | Error
//	Closed → Editing  → Submitting → Closed | Error
//	Closed → ConfirmingDelete → Deleting → Closed
type Workflow[Form any] struct {
	spec     workflowSpec[Form]
	notifier ports.Notifier
	log      *logger.Logger

	mu              sync.Mutex
	state           WorkflowState
	opening         bool
	form            Form
	editingID       string
	pendingDeleteID string
	lastError       string
}

func newWorkflow[Form any](spec workflowSpec[Form], opts Options) *Workflow[Form] {
	return &Workflow[Form]{
		spec:     spec,
		notifier: opts.Notifier,
		log:      opts.Logger.Named(spec.screen + "/workflow"),
		state:    StateClosed,
		form:     spec.blank(),
	}
}

// Phase estado actual del modal.
func (w *Workflow[Form]) Phase() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// CurrentForm valores actuales del formulario.
func (w *Workflow[Form]) CurrentForm() Form {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

func (w *Workflow[Form]) invalid(op string) error {
	return fmt.Errorf("%s: %s en estado %s: %w", w.spec.screen, op, w.state, domain.ErrInvalidTransition)
}

// resetLocked vuelve a Closed con el formulario limpio. Requiere w.mu.
func (w *Workflow[Form]) resetLocked() {
	w.state = StateClosed
	w.form = w.spec.blank()
	w.editingID = ""
	w.pendingDeleteID = ""
	w.lastError = ""
}

// beginOpen reserva la apertura del modal mientras se cargan datos por la red.
func (w *Workflow[Form]) beginOpen(op string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateClosed || w.opening {
		return w.invalid(op)
	}
	w.opening = true
	return nil
}

func (w *Workflow[Form]) abortOpen(err error, fallback string) error {
	w.mu.Lock()
	w.opening = false
	w.mu.Unlock()
	w.log.Warn().Err(err).Msg("no se pudo abrir el formulario")
	w.notifier.Error(w.spec.screen, domain.UserMessage(err, fallback))
	return err
}

// OpenCreate abre el modal de alta con el formulario en blanco.
func (w *Workflow[Form]) OpenCreate(ctx context.Context) error {
	if err := w.beginOpen("abrir alta"); err != nil {
		return err
	}
	if w.spec.prepare != nil {
		if err := w.spec.prepare(ctx); err != nil {
			return w.abortOpen(err, w.spec.submitErr)
		}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.opening = false
	w.resetLocked()
	w.state = StateCreating
	return nil
}

// OpenEdit abre el modal de edición precargado con el registro id.
// Si la carga falla el modal sigue cerrado.
func (w *Workflow[Form]) OpenEdit(ctx context.Context, id string) error {
	if err := w.beginOpen("abrir edición"); err != nil {
		return err
	}
	if w.spec.checkID != nil {
		if err := w.spec.checkID(id); err != nil {
			return w.abortOpen(err, w.spec.loadEditErr)
		}
	}
	form, err := w.spec.loadEdit(ctx, id)
	if err != nil {
		return w.abortOpen(err, w.spec.loadEditErr)
	}
	if w.spec.prepare != nil {
		if err := w.spec.prepare(ctx); err != nil {
			return w.abortOpen(err, w.spec.loadEditErr)
		}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.opening = false
	w.resetLocked()
	w.state = StateEditing
	w.editingID = id
	w.form = form
	return nil
}

// UpdateForm reemplaza los valores del formulario abierto.
func (w *Workflow[Form]) UpdateForm(f Form) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.state {
	case StateCreating, StateEditing, StateError:
		w.form = f
		return nil
	}
	return w.invalid("editar formulario")
}

// Submit envía el formulario (POST en alta, PUT en edición). Si falla, el
// formulario se conserva en estado Error para reintentar. Si tiene éxito,
// cierra el modal, notifica y recarga la colección.
func (w *Workflow[Form]) Submit(ctx context.Context) (string, error) {
	w.mu.Lock()
	switch w.state {
	case StateCreating, StateEditing, StateError:
	default:
		err := w.invalid("enviar")
		w.mu.Unlock()
		return "", err
	}
	id := w.editingID
	editing := id != ""
	form := w.form
	if err := w.spec.validate(form, editing); err != nil {
		w.lastError = err.Error()
		w.mu.Unlock()
		w.notifier.Error(w.spec.screen, domain.UserMessage(err, w.spec.submitErr))
		return "", err
	}
	w.state = StateSubmitting
	w.lastError = ""
	w.mu.Unlock()

	var (
		msg string
		err error
	)
	if editing {
		msg, err = w.spec.update(ctx, id, form)
	} else {
		msg, err = w.spec.create(ctx, form)
	}

	if err != nil {
		text := domain.UserMessage(err, w.spec.submitErr)
		w.mu.Lock()
		w.state = StateError
		w.lastError = text
		w.mu.Unlock()
		w.log.Warn().Err(err).Bool("editing", editing).Msg("envío fallido")
		w.notifier.Error(w.spec.screen, text)
		return "", fmt.Errorf("%s: enviar formulario: %w", w.spec.screen, err)
	}

	w.mu.Lock()
	w.resetLocked()
	w.mu.Unlock()

	if msg == "" {
		msg = w.spec.createdMsg
		if editing {
			msg = w.spec.updatedMsg
		}
	}
	w.log.Info().Bool("editing", editing).Str("id", id).Msg(msg)
	w.notifier.Success(w.spec.screen, msg)
	w.reconcile(ctx)
	return msg, nil
}

// Cancel cierra el modal o la confirmación sin tocar el registro.
func (w *Workflow[Form]) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.state {
	case StateClosed:
		return nil
	case StateCreating, StateEditing, StateError, StateConfirmingDelete:
		w.resetLocked()
		return nil
	}
	return w.invalid("cancelar")
}

// RequestDelete pide confirmación para eliminar id. No envía nada.
func (w *Workflow[Form]) RequestDelete(id string) error {
	if w.spec.checkID != nil {
		if err := w.spec.checkID(id); err != nil {
			return err
		}
	} else if id == "" {
		return domain.NewValidationError("id", "es obligatorio")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateClosed || w.opening {
		return w.invalid("solicitar eliminación")
	}
	w.state = StateConfirmingDelete
	w.pendingDeleteID = id
	return nil
}

// ConfirmDelete envía el DELETE de la eliminación pendiente. Sin una solicitud
// previa devuelve un ValidationError. Éxito o fallo, el diálogo se cierra.
func (w *Workflow[Form]) ConfirmDelete(ctx context.Context) (string, error) {
	w.mu.Lock()
	if w.state != StateConfirmingDelete || w.pendingDeleteID == "" {
		w.mu.Unlock()
		return "", &domain.ValidationError{Message: domain.ErrMissingConfirm.Error(), Err: domain.ErrMissingConfirm}
	}
	id := w.pendingDeleteID
	w.state = StateDeleting
	w.mu.Unlock()

	msg, err := w.spec.remove(ctx, id)

	w.mu.Lock()
	w.resetLocked()
	w.mu.Unlock()

	if err != nil {
		w.log.Warn().Err(err).Str("id", id).Msg("eliminación fallida")
		w.notifier.Error(w.spec.screen, domain.UserMessage(err, w.spec.deleteErr))
		return "", fmt.Errorf("%s: eliminar %s: %w", w.spec.screen, id, err)
	}
	if msg == "" {
		msg = w.spec.deletedMsg(id)
	}
	w.log.Info().Str("id", id).Msg(msg)
	w.notifier.Success(w.spec.screen, msg)
	w.reconcile(ctx)
	return msg, nil
}

// reconcile recarga tras una mutación para reflejar la verdad del servidor.
// Los errores de la recarga ya se notifican en Refresh.
func (w *Workflow[Form]) reconcile(ctx context.Context) {
	if d := w.spec.refreshDelay; d > 0 {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
	_ = w.spec.refresh(ctx)
}

// modal proyección del estado para la vista.
func (w *Workflow[Form]) modal() (dto.ModalState, Form) {
	w.mu.Lock()
	defer w.mu.Unlock()
	m := dto.ModalState{
		State:           string(w.state),
		EditingID:       w.editingID,
		PendingDeleteID: w.pendingDeleteID,
		LastError:       w.lastError,
	}
	switch w.state {
	case StateCreating, StateEditing, StateSubmitting, StateError:
		m.Open = true
		m.Title, m.SubmitLabel = w.spec.createTitle, w.spec.createSubmit
		if w.editingID != "" {
			m.Title, m.SubmitLabel = w.spec.editTitle, w.spec.editSubmit
		}
	case StateConfirmingDelete, StateDeleting:
		m.ConfirmOpen = true
	}
	return m, w.form
}

package inventory

import "github.com/fekuna/omnipos-storefront-service/internal/model"

type FlowState string

const (
	FlowEditing    FlowState = "editing"
	FlowValidated  FlowState = "validated"
	FlowCommitting FlowState = "committing"
)

// Flow is the confirm-before-commit state machine of one stock update form:
// editing -> validated -> (committed) -> editing. A record can only leave
// the flow once, through BeginConfirm.
type Flow struct {
	state         FlowState
	pending       *model.StockUpdate
	errors        map[string]string
	lastCommitted *model.StockUpdate
}

// FlowView is a point-in-time copy of a Flow.
type FlowView struct {
	State         FlowState          `json:"state"`
	Pending       *model.StockUpdate `json:"pending,omitempty"`
	Errors        map[string]string  `json:"errors,omitempty"`
	LastCommitted *model.StockUpdate `json:"last_committed,omitempty"`
}

func NewFlow() *Flow {
	return &Flow{state: FlowEditing}
}

func (f *Flow) State() FlowState {
	return f.state
}

// Submit records the outcome of validating the form. A validation failure
// leaves the flow editing with the field messages; success makes rec the
// pending record, replacing any earlier one.
func (f *Flow) Submit(rec *model.StockUpdate, err error) error {
	if f.state == FlowCommitting {
		return model.ErrCommitInProgress
	}

	f.state = FlowEditing
	f.pending = nil
	f.errors = nil

	if err != nil {
		if verr, ok := model.AsValidationError(err); ok {
			f.errors = make(map[string]string, len(verr.Fields))
			for k, v := range verr.Fields {
				f.errors[k] = v
			}
		}
		return err
	}

	f.state = FlowValidated
	f.pending = rec
	return nil
}

// BeginConfirm hands out the pending record and moves to committing.
func (f *Flow) BeginConfirm() (*model.StockUpdate, error) {
	switch {
	case f.state == FlowCommitting:
		return nil, model.ErrCommitInProgress
	case f.state != FlowValidated || f.pending == nil:
		return nil, model.ErrNoPendingUpdate
	}
	f.state = FlowCommitting
	rec := *f.pending
	return &rec, nil
}

// Finish ends a confirm started by BeginConfirm. On success the form
// resets; on failure the record is pending again.
func (f *Flow) Finish(committed *model.StockUpdate, err error) {
	if f.state != FlowCommitting {
		return
	}
	if err != nil {
		f.state = FlowValidated
		return
	}
	f.lastCommitted = committed
	f.Reset()
}

// Reset discards the pending record and any field messages.
func (f *Flow) Reset() {
	f.state = FlowEditing
	f.pending = nil
	f.errors = nil
}

// Cancel is Reset, refused while a commit is in flight.
func (f *Flow) Cancel() error {
	if f.state == FlowCommitting {
		return model.ErrCommitInProgress
	}
	f.Reset()
	return nil
}

func (f *Flow) View() *FlowView {
	v := &FlowView{State: f.state}
	if f.pending != nil {
		p := *f.pending
		v.Pending = &p
	}
	if len(f.errors) > 0 {
		v.Errors = make(map[string]string, len(f.errors))
		for k, msg := range f.errors {
			v.Errors[k] = msg
		}
	}
	if f.lastCommitted != nil {
		c := *f.lastCommitted
		v.LastCommitted = &c
	}
	return v
}

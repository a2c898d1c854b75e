package router

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/govsnap/govsnap/hub"
	"github.com/govsnap/govsnap/typeddata"
)

// Request tracks one action from building to the hub's answer. A request is owned by a single
// caller and is not safe for concurrent use. A rejected request is never retried, the caller
// builds a new one.
type Request struct {
	ID      uuid.UUID
	Address string
	// Action is the envelope returned by the builder. It is what gets signed and submitted.
	Action    *typeddata.Envelope
	Status    Status
	Signature string
	Receipt   *hub.Receipt
	Err       error
	History   []Transition

	now    func() time.Time
	logger *zap.Logger
}

// transition moves the request to status to.
func (r *Request) transition(to Status) error {
	if !r.Status.CanTransition(to) {
		return transitionError(r.Status, to)
	}
	now := time.Now
	if r.now != nil {
		now = r.now
	}
	r.History = append(r.History, Transition{From: r.Status, To: to, At: now()})
	transitionsTotal.WithLabelValues(string(to)).Inc()
	if r.logger != nil {
		r.logger.Debug("sign request transition",
			zap.Stringer("request", r.ID),
			zap.Stringer("from", r.Status),
			zap.Stringer("to", to),
		)
	}
	r.Status = to
	return nil
}

// reject moves the request to REJECTED with cause err, unless it is already terminal.
func (r *Request) reject(err error) {
	if r.Status.Terminal() {
		return
	}
	r.Err = err
	_ = r.transition(StatusRejected)
}

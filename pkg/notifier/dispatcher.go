package notifier

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/flowvault/flowvault/pkg/async"
	"github.com/flowvault/flowvault/pkg/logger"
	"github.com/flowvault/flowvault/pkg/registry"
	"github.com/flowvault/flowvault/pkg/router"
	"github.com/flowvault/flowvault/pkg/userstore"
)

// Resolver resolves push addressing into live connections.
// *router.Router satisfies it.
type Resolver interface {
	Resolve(target router.Target) ([]*registry.Connection, error)
}

// AuditSink durably records dispatch outcomes. Record failures are logged
// and swallowed by the dispatcher: delivery truth and audit durability are
// separate concerns.
type AuditSink interface {
	Record(ctx context.Context, outcome Outcome) error
}

// NoopSink discards outcomes. Useful for tests and setups without an audit
// backend.
type NoopSink struct{}

// Record implements AuditSink.
func (NoopSink) Record(ctx context.Context, outcome Outcome) error { return nil }

// Dispatcher turns one NotificationIntent into one DispatchOutcome. It is
// the sole public entry point of the notification core.
type Dispatcher struct {
	resolver Resolver
	users    userstore.Store
	senders  []ChannelSender
	sink     AuditSink
	log      *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithAuditSink sets the sink that durably records outcomes.
func WithAuditSink(sink AuditSink) DispatcherOption {
	return func(d *Dispatcher) {
		if sink != nil {
			d.sink = sink
		}
	}
}

// WithLogger sets the dispatcher's logger.
func WithLogger(log *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDispatcher wires the orchestrator. The senders are invoked
// independently per dispatch; each must honor the ChannelSender contract of
// never returning an error.
func NewDispatcher(resolver Resolver, users userstore.Store, senders []ChannelSender, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		resolver: resolver,
		users:    users,
		senders:  senders,
		sink:     NoopSink{},
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch validates the intent, resolves push targets, fans out to every
// channel concurrently with settle-all semantics, aggregates the channel
// results, and hands the outcome to the audit sink.
//
// The only failure a caller can observe is validation: once fan-out starts,
// every channel settles to a result and Dispatch returns the aggregated
// outcome with a nil error. Within a single dispatch the channels are
// unordered relative to each other; no cross-dispatch ordering is
// guaranteed either.
func (d *Dispatcher) Dispatch(ctx context.Context, intent Intent) (Outcome, error) {
	if err := intent.Validate(); err != nil {
		return Outcome{}, err
	}

	target := Target{Intent: intent}

	// Email and webhook payloads need the addressed user's profile. Room
	// and broadcast intents have no single user, so those channels record
	// themselves as not attempted.
	if intent.TargetUserID != "" {
		user, err := d.users.GetUser(ctx, intent.TargetUserID)
		switch {
		case err == nil:
			target.User = &user
		case errors.Is(err, userstore.ErrUserNotFound):
			// Unknown user: no resolvable email or webhook target. Not a
			// delivery failure.
		default:
			target.UserErr = err
		}
	}

	conns, err := d.resolver.Resolve(router.Target{UserID: intent.TargetUserID, Room: intent.TargetRoom})
	if err != nil {
		// Unreachable after validation; surfaced as a contract violation
		// for alternative resolver implementations.
		return Outcome{}, errors.Join(ErrInvalidIntent, err)
	}
	target.Connections = conns

	outcome := Outcome{
		ID:           uuid.New().String(),
		Kind:         intent.Kind,
		Priority:     intent.Priority,
		TargetUserID: intent.TargetUserID,
		TargetRoom:   intent.TargetRoom,
		CreatedAt:    time.Now().UTC(),
	}

	// Fan out. Every sender settles to a result regardless of the others.
	// The only future-level error is a pre-cancelled context, which gets
	// folded into the channel's result below.
	futures := make([]*async.Future[ChannelResult], len(d.senders))
	for i, sender := range d.senders {
		futures[i] = async.Async(ctx, sender, func(ctx context.Context, s ChannelSender) (ChannelResult, error) {
			return s.Send(ctx, target), nil
		})
	}
	results, errs := async.SettleAll(futures...)

	for i, sender := range d.senders {
		result := results[i]
		if errs[i] != nil {
			result = ChannelResult{Attempted: true, Error: errs[i].Error()}
		}
		switch sender.Channel() {
		case ChannelPush:
			outcome.Push = result
		case ChannelEmail:
			outcome.Email = result
		case ChannelWebhook:
			outcome.Webhook = result
		}
	}

	outcome.Delivered = outcome.Push.Delivered || outcome.Email.Delivered || outcome.Webhook.Delivered

	// Audit persistence failure must never retroactively mark a successful
	// delivery as failed.
	if err := d.sink.Record(ctx, outcome); err != nil {
		d.log.LogAttrs(ctx, slog.LevelWarn, "failed to record dispatch outcome",
			logger.OutcomeID(outcome.ID),
			logger.Kind(string(outcome.Kind)),
			logger.Error(err),
		)
	}

	return outcome, nil
}

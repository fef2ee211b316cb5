package notifier

import (
	"fmt"
	"time"
)

// Kind identifies what a notification is about. The set is closed: every
// kind has exactly one payload type and one webhook event name.
type Kind string

const (
	KindOverageAlert   Kind = "overage_alert"
	KindBillingUpdate  Kind = "billing_update"
	KindSystemAlert    Kind = "system_alert"
	KindUsageWarning   Kind = "usage_warning"
	KindWorkflowUpdate Kind = "workflow_update"
	KindAuditLog       Kind = "audit_log"
)

// Valid reports whether the kind is part of the closed set.
func (k Kind) Valid() bool {
	switch k {
	case KindOverageAlert, KindBillingUpdate, KindSystemAlert,
		KindUsageWarning, KindWorkflowUpdate, KindAuditLog:
		return true
	}
	return false
}

// EventName returns the dotted event identifier used in webhook envelopes.
func (k Kind) EventName() string {
	switch k {
	case KindOverageAlert:
		return "overage.alert"
	case KindBillingUpdate:
		return "billing.updated"
	case KindSystemAlert:
		return "system.alert"
	case KindUsageWarning:
		return "usage.warning"
	case KindWorkflowUpdate:
		return "workflow.changed"
	case KindAuditLog:
		return "audit.logged"
	default:
		return string(k)
	}
}

// Priority is advisory metadata carried through to channel payloads. It does
// not affect delivery order.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Payload is the kind-specific data of a notification. The interface is
// sealed: only the payload types declared in this package implement it, so
// the (Kind, Payload) pairing stays a closed tagged union.
type Payload interface {
	kind() Kind
	Validate() error
}

// OverageAlertPayload reports usage exceeding the plan limit for a metric.
type OverageAlertPayload struct {
	WorkflowID string    `json:"workflow_id,omitempty"`
	Metric     string    `json:"metric"`
	Used       int64     `json:"used"`
	Limit      int64     `json:"limit"`
	PeriodEnd  time.Time `json:"period_end"`
}

func (OverageAlertPayload) kind() Kind { return KindOverageAlert }

func (p OverageAlertPayload) Validate() error {
	if p.Metric == "" {
		return fmt.Errorf("metric is required")
	}
	if p.Used < p.Limit {
		return fmt.Errorf("used %d below limit %d is not an overage", p.Used, p.Limit)
	}
	return nil
}

// BillingUpdatePayload reports a change to the user's billing state.
type BillingUpdatePayload struct {
	InvoiceID   string `json:"invoice_id"`
	Status      string `json:"status"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

func (BillingUpdatePayload) kind() Kind { return KindBillingUpdate }

func (p BillingUpdatePayload) Validate() error {
	if p.InvoiceID == "" {
		return fmt.Errorf("invoice id is required")
	}
	if p.Status == "" {
		return fmt.Errorf("status is required")
	}
	return nil
}

// SystemAlertPayload carries an operator-facing announcement.
type SystemAlertPayload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (SystemAlertPayload) kind() Kind { return KindSystemAlert }

func (p SystemAlertPayload) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// UsageWarningPayload warns that usage crossed a threshold short of the
// limit, giving the user time to act before an overage.
type UsageWarningPayload struct {
	Metric    string  `json:"metric"`
	Used      int64   `json:"used"`
	Limit     int64   `json:"limit"`
	Threshold float64 `json:"threshold"`
}

func (UsageWarningPayload) kind() Kind { return KindUsageWarning }

func (p UsageWarningPayload) Validate() error {
	if p.Metric == "" {
		return fmt.Errorf("metric is required")
	}
	if p.Threshold <= 0 || p.Threshold > 1 {
		return fmt.Errorf("threshold must be in (0, 1], got %v", p.Threshold)
	}
	return nil
}

// WorkflowUpdatePayload reports a change to a synced workflow: a new
// snapshot version, a diff detected upstream, or a restore.
type WorkflowUpdatePayload struct {
	WorkflowID   string `json:"workflow_id"`
	WorkflowName string `json:"workflow_name,omitempty"`
	ChangeType   string `json:"change_type"`
	VersionID    string `json:"version_id,omitempty"`
}

func (WorkflowUpdatePayload) kind() Kind { return KindWorkflowUpdate }

func (p WorkflowUpdatePayload) Validate() error {
	if p.WorkflowID == "" {
		return fmt.Errorf("workflow id is required")
	}
	if p.ChangeType == "" {
		return fmt.Errorf("change type is required")
	}
	return nil
}

// AuditLogPayload mirrors an audit trail entry to subscribed channels.
type AuditLogPayload struct {
	Action     string `json:"action"`
	Resource   string `json:"resource,omitempty"`
	ResourceID string `json:"resource_id,omitempty"`
	Actor      string `json:"actor,omitempty"`
}

func (AuditLogPayload) kind() Kind { return KindAuditLog }

func (p AuditLogPayload) Validate() error {
	if p.Action == "" {
		return fmt.Errorf("action is required")
	}
	return nil
}

// Intent is the caller-supplied description of a notification to dispatch,
// prior to channel-specific payload construction. Exactly one of
// TargetUserID and TargetRoom may be set; leaving both empty addresses every
// live connection.
type Intent struct {
	TargetUserID string
	TargetRoom   string
	Kind         Kind
	Priority     Priority
	Payload      Payload
}

// Validate rejects malformed intents before any side effect. Ambiguous
// addressing and unknown kinds are contract violations: they indicate a bug
// in the calling domain service, not a runtime condition.
func (i Intent) Validate() error {
	if i.TargetUserID != "" && i.TargetRoom != "" {
		return ErrAmbiguousAddressing
	}
	if !i.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidIntent, i.Kind)
	}
	if i.Payload == nil {
		return fmt.Errorf("%w: payload is required", ErrInvalidIntent)
	}
	if i.Payload.kind() != i.Kind {
		return fmt.Errorf("%w: payload type does not match kind %q", ErrInvalidIntent, i.Kind)
	}
	if err := i.Payload.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidIntent, err)
	}
	return nil
}

// NewOverageAlert builds a high-priority overage notification for one user.
func NewOverageAlert(userID string, payload OverageAlertPayload) Intent {
	return Intent{TargetUserID: userID, Kind: KindOverageAlert, Priority: PriorityHigh, Payload: payload}
}

// NewBillingUpdate builds a billing notification for one user.
func NewBillingUpdate(userID string, payload BillingUpdatePayload) Intent {
	return Intent{TargetUserID: userID, Kind: KindBillingUpdate, Priority: PriorityMedium, Payload: payload}
}

// NewSystemAlert builds a broadcast system announcement. Pass a room to
// scope it, or leave room empty to reach every live connection.
func NewSystemAlert(room string, payload SystemAlertPayload) Intent {
	return Intent{TargetRoom: room, Kind: KindSystemAlert, Priority: PriorityCritical, Payload: payload}
}

// NewUsageWarning builds a usage threshold warning for one user.
func NewUsageWarning(userID string, payload UsageWarningPayload) Intent {
	return Intent{TargetUserID: userID, Kind: KindUsageWarning, Priority: PriorityMedium, Payload: payload}
}

// NewWorkflowUpdate builds a workflow change notification for one user.
func NewWorkflowUpdate(userID string, payload WorkflowUpdatePayload) Intent {
	return Intent{TargetUserID: userID, Kind: KindWorkflowUpdate, Priority: PriorityLow, Payload: payload}
}

// NewAuditLog builds an audit trail notification for the admin room.
func NewAuditLog(payload AuditLogPayload) Intent {
	return Intent{TargetRoom: "admin", Kind: KindAuditLog, Priority: PriorityLow, Payload: payload}
}

package notifier

import (
	"encoding/json"
	"fmt"
)

// DecodePayload unmarshals raw JSON into the payload type for kind. It is
// the bridge between transport-level intents and the closed payload union.
func DecodePayload(kind Kind, data []byte) (Payload, error) {
	switch kind {
	case KindOverageAlert:
		return decodeAs[OverageAlertPayload](kind, data)
	case KindBillingUpdate:
		return decodeAs[BillingUpdatePayload](kind, data)
	case KindSystemAlert:
		return decodeAs[SystemAlertPayload](kind, data)
	case KindUsageWarning:
		return decodeAs[UsageWarningPayload](kind, data)
	case KindWorkflowUpdate:
		return decodeAs[WorkflowUpdatePayload](kind, data)
	case KindAuditLog:
		return decodeAs[AuditLogPayload](kind, data)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidIntent, kind)
	}
}

func decodeAs[T Payload](kind Kind, data []byte) (Payload, error) {
	var p T
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: decode %s payload: %v", ErrInvalidIntent, kind, err)
	}
	return p, nil
}

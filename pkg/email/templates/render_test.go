package templates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowvault/flowvault/pkg/email/templates"
	"github.com/flowvault/flowvault/pkg/notifier"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	renderer := templates.New()

	tests := []struct {
		name        string
		kind        notifier.Kind
		payload     notifier.Payload
		wantSubject string
		wantInHTML  string
		wantInText  string
	}{
		{
			name: "overage alert",
			kind: notifier.KindOverageAlert,
			payload: notifier.OverageAlertPayload{
				Metric:    "workflow_runs",
				Used:      1200,
				Limit:     1000,
				PeriodEnd: time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
			},
			wantSubject: "Usage overage: workflow_runs exceeded your plan limit",
			wantInHTML:  "workflow_runs",
			wantInText:  "Used 1200 of 1000",
		},
		{
			name: "billing update",
			kind: notifier.KindBillingUpdate,
			payload: notifier.BillingUpdatePayload{
				InvoiceID:   "inv_42",
				Status:      "paid",
				AmountCents: 2900,
				Currency:    "USD",
			},
			wantSubject: "Billing update for invoice inv_42",
			wantInHTML:  "inv_42",
			wantInText:  "Invoice inv_42 is now paid",
		},
		{
			name: "system alert",
			kind: notifier.KindSystemAlert,
			payload: notifier.SystemAlertPayload{
				Title:   "Scheduled maintenance",
				Message: "API unavailable Saturday 02:00 UTC",
			},
			wantSubject: "Scheduled maintenance",
			wantInHTML:  "API unavailable",
			wantInText:  "API unavailable Saturday 02:00 UTC",
		},
		{
			name: "usage warning",
			kind: notifier.KindUsageWarning,
			payload: notifier.UsageWarningPayload{
				Metric:    "api_calls",
				Used:      8200,
				Limit:     10000,
				Threshold: 0.8,
			},
			wantSubject: "Approaching your api_calls limit",
			wantInHTML:  "api_calls",
			wantInText:  "Used 8200 of 10000",
		},
		{
			name: "workflow update uses name over id",
			kind: notifier.KindWorkflowUpdate,
			payload: notifier.WorkflowUpdatePayload{
				WorkflowID:   "wf_7",
				WorkflowName: "Nightly sync",
				ChangeType:   "restored",
				VersionID:    "v12",
			},
			wantSubject: "Workflow change: wf_7",
			wantInHTML:  "Nightly sync",
			wantInText:  "Nightly sync",
		},
		{
			name: "audit log",
			kind: notifier.KindAuditLog,
			payload: notifier.AuditLogPayload{
				Action:   "workflow.deleted",
				Resource: "workflow",
				Actor:    "u1",
			},
			wantSubject: "Audit event: workflow.deleted",
			wantInHTML:  "workflow.deleted",
			wantInText:  "workflow.deleted by u1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rendered, err := renderer.Render(tt.kind, tt.payload)
			require.NoError(t, err)

			assert.Equal(t, tt.wantSubject, rendered.Subject)
			assert.Contains(t, rendered.HTML, tt.wantInHTML)
			assert.Contains(t, rendered.Text, tt.wantInText)
			assert.NotEmpty(t, rendered.HTML)
			assert.NotEmpty(t, rendered.Text)
		})
	}

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()

		_, err := renderer.Render(notifier.Kind("carrier_pigeon"), notifier.SystemAlertPayload{Title: "x"})
		assert.Error(t, err)
	})
}

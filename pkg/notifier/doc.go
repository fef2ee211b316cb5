// Package notifier fans a single domain event out to zero or more delivery
// channels: live socket push, transactional email, and outbound webhooks.
//
// The Dispatcher is the sole public entry point. Given a NotificationIntent
// it validates addressing and payload, resolves live push targets through
// the room router, invokes every ChannelSender concurrently with settle-all
// semantics, and aggregates the per-channel results into one immutable
// DispatchOutcome which is handed to the audit sink.
//
// Failure isolation is the design center: each channel has its own failure
// domain. A sender never returns an error; it reports success or failure
// through its ChannelResult, so a dead socket, a rejecting mail provider,
// and a timing-out webhook endpoint can never block or corrupt one
// another's delivery. A channel with no resolvable target (an offline user,
// no subscribed endpoints) records attempted=false, which is not a failure.
//
//	dispatcher := notifier.NewDispatcher(roomRouter, users, []notifier.ChannelSender{
//		notifier.NewPushSender(),
//		notifier.NewEmailSender(renderer, mailer),
//		notifier.NewWebhookSender(nil),
//	}, notifier.WithAuditSink(sink))
//
//	outcome, err := dispatcher.Dispatch(ctx, notifier.NewOverageAlert("u1", payload))
//
// Retry of failed channels is explicitly higher-level policy: the recorded
// failure in the outcome is the hook point, the dispatcher never loops.
package notifier

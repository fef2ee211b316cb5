// Package audit provides durable dispatch auditing. Every notification
// fan-out produces exactly one Entry recording the per-channel results, so
// support can answer "did user X get notified and through what" without
// grepping logs.
//
// The Recorder satisfies the dispatcher's sink interface and converts
// outcomes into entries. Storage backends exist for PostgreSQL, MongoDB,
// and memory; AsyncStorage decorates any of them with a buffered write
// path so dispatch latency never includes a storage round trip:
//
//	storage, _ := audit.NewPGStorage(pool)
//	buffered := audit.NewAsyncStorage(storage, audit.WithAsyncLogger(log))
//	defer buffered.Close(ctx)
//
//	sink := audit.MustNewRecorder(buffered)
//
// When the async buffer overflows the entry is dropped and logged rather
// than blocking notification delivery.
package audit

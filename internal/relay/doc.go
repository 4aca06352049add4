// Package relay talks to the moderation relay over HTTP.
//
// The relay is a small store-and-forward service that collects block,
// report and verification notices for the moderation team. This package
// holds both sides: Client, a domain.ModerationNotifier posting notices, and
// Server, the in-memory handler run by cmd/modrelay.
//
// HTTP API
//
//	POST /reports        enqueue a report notice
//	POST /blocks         enqueue a block notice
//	POST /verifications  enqueue a verification request
//	GET  /reports?limit=N
//	    return up to N of the most recent reports, oldest first; all of them
//	    when limit is absent
//
// All requests are JSON and accept a context for cancellation and deadlines.
// Non-2xx statuses are returned as errors carrying the method, path and
// status text.
package relay

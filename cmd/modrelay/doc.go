// Package main runs the in-memory moderation relay. It collects block,
// report and verification notices sent by autistnet clients until a
// moderator fetches them.
//
// HTTP API
//
//	POST /reports, POST /blocks, POST /verifications
//	    Enqueue a ModerationNotice. The endpoint decides the kind; a zero
//	    timestamp is filled with the server time. A blank target is a 400.
//
//	GET /reports?limit=N
//	    Return up to N of the most recent reports.
//
//	GET /metrics
//	    Prometheus metrics, including per-endpoint request counts.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - An access log records method, path, remote, status, bytes and
//     duration for each request.
//   - The default listen address is :8080. SIGINT and SIGTERM shut the
//     server down gracefully.
package main

// Package log provides a thin, structured logging layer on top of zap.
//
// thtp's core uses this only for the handful of events
// that can't be communicated back through a normal error return: a pub/sub
// subscriber panic and an unhandled internal error. Everything else flows through
// the lifecycle event bus instead (see the root package's Subscriber type).
package log

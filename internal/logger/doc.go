// Package logger wraps zap with a global sugared logger, context helpers
// (ToContext/FromContext/WithName/WithKV), level parsing, and per-level
// convenience functions (Infof, WarnKV, etc.).
//
// The frame loop, the status server and the CLI take a context and pull the
// logger from it, so every line carries the component name that produced it.
package logger

// Package logx provides leveled, printf-style logging configured from the
// environment.
//
// Environment Variables:
//   - LOG_LEVEL: minimum level (TRACE, DEBUG, INFO, WARN, ERROR, OFF)
//   - LOG_FORMAT: console or json
//   - LOG_COLOR: colored level tags in console output (default: true)
//   - LOG_CALLER: file:line of the caller (default: true)
//
// Basic Usage:
//
//	logx.Info("Webhook server listening on :%d", 8080)
//	logx.Error("Failed to send WhatsApp message: %v", err)
//	logx.DebugStruct("payload", payload)
//
// Console output:
//
//	[2025-06-08 18:57:52] [INFO] main.go:64: Webhook server listening on :8080
//
// JSON output (LOG_FORMAT=json):
//
//	{"timestamp":"2025-06-08T18:57:52Z","level":"INFO","message":"...","caller":"main.go:64"}
package logx

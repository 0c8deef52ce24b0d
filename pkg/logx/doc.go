// Package logx configures agentbell's structured logging.
//
// This repo uses a small wrapper (logx.Logger) on top of zerolog to keep:
//   - Console output readable (short timestamp + short caller)
//   - Hook output on stderr so stdout stays free for the host protocol
//   - A safe no-op zero value so components never nil-check their logger
package logx

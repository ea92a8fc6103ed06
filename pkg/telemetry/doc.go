// Package telemetry provides structured logging and the advisory diagnostics
// channel for dft-tools.
//
// # Overview
//
// Logging is built on zerolog. Advisories are non-fatal diagnostics reporting
// a policy decision the parser already made (for example, discarding a
// redundant shell-level group parameter in favor of an explicit group
// declaration). They travel on a side channel distinct from the error path:
// a Reporter collects them, logs each at warn level, and exposes the batch to
// callers after the parse, whether it succeeded or not.
//
// # Usage Example
//
//	logger := telemetry.NewLogger(telemetry.LoggingConfig{Level: "info", Format: "console"})
//	reporter := telemetry.NewReporter(logger)
//
//	model, err := config.Parse(doc, config.WithReporter(reporter))
//	for _, adv := range reporter.Advisories() {
//	    fmt.Println(adv.Message)
//	}
//
// # Thread Safety
//
// Reporter is safe for concurrent use.
package telemetry

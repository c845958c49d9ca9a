// Package lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It contains shared utilities, the transcript analysis engine,
// background job processing (using Redis/Asynq), and email client
// integrations (Resend).
package lib

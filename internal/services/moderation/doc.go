// Package moderation forwards block, report and verification requests to
// the configured notifiers (the moderation relay, a Telegram chat). Nothing
// is stored locally and delivery failures never reach the caller.
package moderation

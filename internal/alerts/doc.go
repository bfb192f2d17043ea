// Package alerts implements threshold alerting over report snapshots. Rules
// are condition strings such as "rejected_pct > 20" evaluated after every
// registration; firing rules are logged and optionally delivered to generic
// JSON webhooks, with per-rule cooldowns to suppress repeat notifications.
package alerts

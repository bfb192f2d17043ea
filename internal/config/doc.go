// Package config loads and validates the qualityline YAML configuration:
// acceptance criteria, box capacity, shell options, the optional monitor
// surface, and alert rules. It also provides a file watcher so criteria
// changes on disk apply to a running session without a restart.
package config

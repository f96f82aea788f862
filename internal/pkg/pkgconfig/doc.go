// Package pkgconfig reads service settings through the Config interface.
//
// Viper is the only implementation: a YAML file overridden by environment
// variables (dashboard.chat.reply_delay -> DASHBOARD_CHAT_REPLY_DELAY), with
// defaults for every key the service reads. Durations use Go syntax ("2s",
// "1200ms") and lists are comma separated.
package pkgconfig

// Package bot provides the Discord command surface.
//
// It wraps a discordgo session with a small prefix-command router. Incoming
// messages starting with the configured prefix (default "ledger") are split
// into a command word and arguments, tagged with a trace id, and dispatched
// to the handler a feature registered for that word. Handlers return
// Responses (plain strings or embeds) that the bot sends back to the
// originating channel.
//
// # Command grammar
//
//	ledger <command> [args...]
//
// Arguments are whitespace-separated; double quotes group words that
// belong together ("10/02/2024 19:30"). Private messages and messages
// without the prefix are ignored.
//
// The router also serves a built-in help command listing every registered
// command with its usage line.
package bot

package bot

// Config holds configuration for the Discord surface.
type Config struct {
	// Token is the Discord bot token.
	Token string `mapstructure:"token" default:""`
	// Prefix is the word starting every bot command.
	Prefix string `mapstructure:"prefix" default:"ledger"`
}

package version

// Version is the version of the bot binary. It is set at build time:
// -ldflags "-X github.com/rxtech-lab/candle-bot/internal/version.Version=v1.2.3"
// "main" marks a development build.
var Version = "v1.0.0"

// GetVersion returns the version of the binary.
func GetVersion() string {
	return Version
}

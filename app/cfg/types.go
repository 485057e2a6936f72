package cfg

import "time"

type Command string

const (
	CommandFetch Command = "fetch"
	CommandServe Command = "serve"
	CommandBrief Command = "brief"
)

type Cfg struct {
	Command Command

	// Pipeline configuration
	DataDir        string
	FeedsFile      string
	PublishersFile string
	UserAgent      string
	FetchTimeout   time.Duration

	// Server configuration
	Port         string
	Schedule     string
	APIAccessKey string
	RunOnStart   bool

	// Briefing configuration
	BriefingProvider string
	BriefingModel    string
	BriefingTop      int
	AnthropicAPIKey  string
	OpenAIAPIKey     string

	// Application metadata
	Debug   bool
	Version string
}

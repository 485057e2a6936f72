package cfg

import (
	"cmp"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	DataDir        string `long:"data-dir" env:"DATA_DIR" default:"./data" description:"Directory for news.json, the archive and briefing.json"`
	FeedsFile      string `long:"feeds-file" env:"FEEDS_FILE" description:"Feed registry YAML file (built-in registry when empty)"`
	PublishersFile string `long:"publishers-file" env:"PUBLISHERS_FILE" description:"Publishers YAML file for run notifications (optional)"`
	UserAgent      string `long:"user-agent" env:"USER_AGENT" default:"SITREP-News-Bot/1.0" description:"User agent string for HTTP requests"`
	FetchTimeout   int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"15" description:"Per-feed fetch timeout in seconds"`
	Debug          bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`

	Fetch fetchCmd `command:"fetch" description:"Fetch all feeds and publish a snapshot (default)"`
	Serve serveCmd `command:"serve" description:"Publish snapshots on a schedule and serve them over HTTP"`
	Brief briefCmd `command:"brief" description:"Generate briefing.json from the current snapshot"`
}

type fetchCmd struct{}

type serveCmd struct {
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	Schedule     string `long:"schedule" env:"SCHEDULE" default:"*/30 * * * *" description:"Cron schedule for pipeline runs"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	RunOnStart   bool   `long:"run-on-start" env:"RUN_ON_START" description:"Run the pipeline once at startup"`
}

type briefCmd struct {
	Provider        string `long:"provider" env:"BRIEFING_PROVIDER" default:"anthropic" choice:"anthropic" choice:"openai" description:"Briefing model provider"`
	Model           string `long:"model" env:"BRIEFING_MODEL" description:"Model name (provider default when empty)"`
	Top             int    `long:"top" env:"BRIEFING_TOP" default:"20" description:"Number of headlines to brief on"`
	AnthropicAPIKey string `long:"anthropic-api-key" env:"ANTHROPIC_API_KEY" description:"Anthropic API key"`
	OpenAIAPIKey    string `long:"openai-api-key" env:"OPENAI_API_KEY" description:"OpenAI API key"`
}

var globalCfg *Cfg

// Load parses the command line and environment. It returns nil, nil when
// help was requested.
func Load() (*Cfg, error) {
	cfg, err := load(os.Args[1:])
	if err != nil || cfg == nil {
		return cfg, err
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)
	parser.SubcommandsOptional = true

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	command := CommandFetch
	if parser.Active != nil {
		command = Command(parser.Active.Name)
	}

	if raw.FetchTimeout <= 0 {
		return nil, fmt.Errorf("fetch timeout must be positive, got %d", raw.FetchTimeout)
	}
	if command == CommandBrief && raw.Brief.Top <= 0 {
		return nil, fmt.Errorf("briefing headline count must be positive, got %d", raw.Brief.Top)
	}

	cfg := &Cfg{
		Command:          command,
		DataDir:          raw.DataDir,
		FeedsFile:        raw.FeedsFile,
		PublishersFile:   raw.PublishersFile,
		UserAgent:        raw.UserAgent,
		FetchTimeout:     time.Duration(raw.FetchTimeout) * time.Second,
		Port:             raw.Serve.Port,
		Schedule:         raw.Serve.Schedule,
		APIAccessKey:     raw.Serve.APIAccessKey,
		RunOnStart:       raw.Serve.RunOnStart,
		BriefingProvider: raw.Brief.Provider,
		BriefingModel:    raw.Brief.Model,
		BriefingTop:      raw.Brief.Top,
		AnthropicAPIKey:  raw.Brief.AnthropicAPIKey,
		OpenAIAPIKey:     raw.Brief.OpenAIAPIKey,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	return cfg, nil
}

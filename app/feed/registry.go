package feed

import (
	_ "embed"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed feeds.yml
var defaultRegistry []byte

// LoadRegistry reads the feed registry from path, or the built-in registry
// when path is empty.
func LoadRegistry(path string) ([]Source, error) {
	data := defaultRegistry
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	}

	sources, err := ParseRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("invalid registry %s: %w", registryName(path), err)
	}

	slog.Debug("Feed registry loaded", "registry", registryName(path), "feeds", len(sources))
	return sources, nil
}

func ParseRegistry(data []byte) ([]Source, error) {
	var registry Registry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(registry.Feeds) == 0 {
		return nil, fmt.Errorf("at least one feed is required")
	}

	sources := make([]Source, 0, len(registry.Feeds))
	seen := make(map[string]int, len(registry.Feeds))
	for i, source := range registry.Feeds {
		source.URL = strings.TrimSpace(source.URL)
		source.Name = strings.TrimSpace(source.Name)
		source.Category = strings.TrimSpace(source.Category)
		if source.Category == "" {
			source.Category = FallbackCategory
		}

		if err := validateSource(source); err != nil {
			return nil, fmt.Errorf("feed at index %d: %w", i, err)
		}

		if prev, ok := seen[source.URL]; ok {
			return nil, fmt.Errorf("feed at index %d duplicates feed at index %d: %s", i, prev, source.URL)
		}
		seen[source.URL] = i

		sources = append(sources, source)
	}

	return sources, nil
}

func validateSource(source Source) error {
	requiredFields := map[string]string{
		"feed URL":    source.URL,
		"source name": source.Name,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	u, err := url.Parse(source.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("feed URL must be an absolute http(s) URL: %s", source.URL)
	}

	if !IsKnownCategory(source.Category) {
		return fmt.Errorf("unknown category: %s", source.Category)
	}

	return nil
}

func registryName(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

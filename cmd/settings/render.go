package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/carbondoomsday/carbondoomsday/internal/config"
	"gopkg.in/yaml.v3"
)

// render writes mapping to w in the given format. Keys come out sorted.
func render(w io.Writer, mapping map[string]any, format string) error {
	switch format {
	case config.FormatJSON:
		data, err := json.MarshalIndent(mapping, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshalling settings to json: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(mapping); err != nil {
			return fmt.Errorf("error marshalling settings to yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", config.ErrUnknownFormat, format)
	}
}

const redacted = "********"

var (
	secretKeys = map[string]bool{
		"SECRET_KEY":          true,
		"OPBEAT_SECRET_TOKEN": true,
		"SECRET_TOKEN":        true,
		"PASSWORD":            true,
	}
	urlKeys = map[string]bool{
		"REDIS_URL":             true,
		"CELERY_BROKER_URL":     true,
		"CELERY_RESULT_BACKEND": true,
	}
)

// redact masks secrets at any depth of mapping and the passwords of
// connection URLs, in place.
func redact(mapping map[string]any) {
	for key, value := range mapping {
		switch v := value.(type) {
		case map[string]any:
			redact(v)
		case string:
			if v == "" {
				continue
			}
			if secretKeys[key] {
				mapping[key] = redacted
			} else if urlKeys[key] {
				mapping[key] = redactURL(v)
			}
		}
	}
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return redacted
	}

	return u.Redacted()
}

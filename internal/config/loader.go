package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := populate(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// populate walks the config sections and fills every env-tagged field.
func populate(v reflect.Value) error {
	for _, sf := range reflect.VisibleFields(v.Type()) {
		if !sf.IsExported() {
			continue
		}
		fv := v.FieldByIndex(sf.Index)
		if sf.Type.Kind() == reflect.Struct {
			if err := populate(fv); err != nil {
				return err
			}
			continue
		}

		name, raw := lookup(sf.Tag)
		if raw == "" {
			continue
		}
		if err := assign(fv.Addr().Interface(), raw); err != nil {
			return fmt.Errorf("%s=%q: %w", name, raw, err)
		}
	}
	return nil
}

// lookup returns the variable name and value for a field: env first, then
// envAlt, then the default tag.
func lookup(tag reflect.StructTag) (string, string) {
	name := tag.Get("env")
	if name == "" {
		return "", ""
	}
	for _, key := range []string{name, tag.Get("envAlt")} {
		if key == "" {
			continue
		}
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return key, v
		}
	}
	return name, tag.Get("default")
}

// assign parses raw into the field behind ptr.
func assign(ptr any, raw string) error {
	switch p := ptr.(type) {
	case *string:
		*p = raw
	case *bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		*p = b
	case *int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		*p = n
	case *int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		*p = n
	case *time.Duration:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		*p = d
	case *[]string:
		*p = splitList(raw)
	default:
		return fmt.Errorf("unsupported field type %T", ptr)
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank items.
func splitList(raw string) []string {
	var out []string
	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Catalog.Directory) == "" {
		errs = append(errs, "PRICE_DIR must not be empty")
	}
	switch strings.ToLower(c.Catalog.RowPolicy) {
	case RowPolicySkip, RowPolicyFail:
	default:
		errs = append(errs, fmt.Sprintf("ROW_ERROR_POLICY (%q) must be one of: skip, fail", c.Catalog.RowPolicy))
	}
	if c.Catalog.MaxFileSize <= 0 {
		errs = append(errs, "PRICE_MAX_FILE_SIZE must be positive")
	}

	if strings.TrimSpace(c.Report.Path) == "" {
		errs = append(errs, "REPORT_PATH must not be empty")
	}

	if c.Server.Enabled {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
		}
		if c.Server.ShutdownTimeout <= 0 {
			errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
		}
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a one-line summary of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	fmt.Fprintf(&b, "Catalog: {Directory: %q, RowPolicy: %q, MaxFileSize: %d}, ",
		c.Catalog.Directory, c.Catalog.RowPolicy, c.Catalog.MaxFileSize)
	fmt.Fprintf(&b, "Report: {Path: %q}, ", c.Report.Path)
	fmt.Fprintf(&b, "Server: {Enabled: %v, Addr: %q}, ", c.Server.Enabled, c.Server.Addr())
	fmt.Fprintf(&b, "Logging: {Level: %q, Format: %q}", c.Logging.Level, c.Logging.Format)
	b.WriteString("}")
	return b.String()
}

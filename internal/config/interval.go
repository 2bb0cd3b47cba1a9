package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Interval — длительность, заданная либо числом миллисекунд ("60000"),
// как принято для OTEL_METRIC_EXPORT_INTERVAL, либо строкой Go ("60s").
type Interval time.Duration

// Duration возвращает значение как time.Duration.
func (i Interval) Duration() time.Duration {
	return time.Duration(i)
}

// String возвращает значение в формате time.Duration.
func (i Interval) String() string {
	return time.Duration(i).String()
}

// UnmarshalText используется caarlos0/env при разборе переменной окружения.
func (i *Interval) UnmarshalText(text []byte) error {
	d, err := parseInterval(string(text))
	if err != nil {
		return err
	}
	*i = Interval(d)
	return nil
}

// UnmarshalYAML принимает те же форматы в YAML-файле.
func (i *Interval) UnmarshalYAML(value *yaml.Node) error {
	d, err := parseInterval(value.Value)
	if err != nil {
		return err
	}
	*i = Interval(d)
	return nil
}

func parseInterval(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("interval %q: want milliseconds or a duration like 60s", raw)
	}
	return d, nil
}

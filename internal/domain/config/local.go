package config

import "strings"

// LocalConfigFileName is the per-checkout override file inside the data dir
const LocalConfigFileName = "config.local.json"

// LocalConfig holds defaults for --namespace and --network.
// Empty fields are omitted so they never shadow scubr.toml.
type LocalConfig struct {
	Namespace string `json:"namespace,omitempty"`
	Network   string `json:"network,omitempty"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyNamespace ConfigKey = "namespace"
	ConfigKeyNetwork   ConfigKey = "network"
)

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{
		ConfigKeyNamespace,
		ConfigKeyNetwork,
	}
}

// ParseConfigKey normalizes a user supplied key, accepting "ns" for namespace
func ParseConfigKey(key string) (ConfigKey, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "ns" {
		return ConfigKeyNamespace, true
	}
	for _, valid := range ValidConfigKeys() {
		if string(valid) == key {
			return valid, true
		}
	}
	return "", false
}

// Get returns the value stored under key
func (c *LocalConfig) Get(key ConfigKey) string {
	switch key {
	case ConfigKeyNamespace:
		return c.Namespace
	case ConfigKeyNetwork:
		return c.Network
	}
	return ""
}

// Set stores value under key
func (c *LocalConfig) Set(key ConfigKey, value string) {
	switch key {
	case ConfigKeyNamespace:
		c.Namespace = value
	case ConfigKeyNetwork:
		c.Network = value
	}
}

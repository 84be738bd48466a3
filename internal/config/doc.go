// Package config manages user-level settings stored at ~/.qflow/config.yaml.
// Every key can be overridden with a QFLOW_-prefixed environment variable,
// and the whole directory can be relocated with QFLOW_HOME.
package config

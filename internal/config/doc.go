// Package config loads octconnect configuration from project-local and
// global YAML files. CLI code applies precedence: flags, then the local
// file, then the global file.
package config

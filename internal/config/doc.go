// Package config provides configuration management for the mdmeta CLI.
//
// This package handles loading and validating the tool's optional
// configuration file and its environment variables. Command-line flags take
// precedence over the environment, which takes precedence over the file.
//
// # Configuration File
//
// The default configuration file location is ~/.config/mdmeta/config.yaml
// (the current directory is searched first). The file uses YAML format:
//
//	model: gpt-4o-2024-05-13
//	temperature: 0.7
//	base_url: https://api.openai.com/v1
//
// # Environment
//
// OPENAI_API_KEY supplies the completion credential and is required. It is
// never stored in the config file. MDMETA_MODEL, MDMETA_TEMPERATURE, and
// MDMETA_BASE_URL override the corresponding file values.
//
// # Validation
//
// All loaded configurations are validated automatically: the temperature
// must lie in [0, 1], the model must be non-empty, and the base URL must be
// an http(s) URL.
package config

// Package file stores configuration in ~/.rocketfuel/config.toml and reloads
// it when the file is edited outside the CLI.
package file

// Package cli provides command-line interface functionality including
// flag definitions, command setup, and configuration management.
package cli

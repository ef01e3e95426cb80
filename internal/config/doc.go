// Package config provides configuration loading, merging, and validation
// facilities for the evently server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetStructuredConfig]; flags are registered on a
// cobra command's flag set with [BindFlags].
package config

// Package config locates, parses, and validates the YAML configuration of the
// model pipeline. A single flat document is checked against two independent
// schemas (application settings and model settings) and assembled into a
// strongly typed Config. Any failure aborts the load; there are no defaults.
package config

// Package utils exposes reusable helpers consumed by the termstatus CLI.
//
// It houses the ConfigurationLoader (Viper with embedded defaults, files, and
// environment overrides), the LoggerFactory that builds diagnostic zap loggers,
// the CommandContextAccessor that carries the status reporter through command
// contexts, and FlushingWriter for buffered destinations.
package utils

// Package config loads the application configuration.
//
// Configuration comes from environment variables, optionally seeded by a
// .env file, with defaults declared as struct tags on the partial config
// structs. Each core package owns its own partial (server.Config,
// logger.Config, database.Config, nango.Config, storage.Config); this
// package only composes them and wires Viper.
//
// Environment variables map to nested keys by underscore substitution, e.g.
// NANGO_SECRET_KEY -> nango.secret_key, SERVER_PORT -> server.port.
package config

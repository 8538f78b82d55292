// Package config defines the scanner's settings tree, its built-in defaults
// and the TOML file loader.
//
// The file must contain every key of the schema. Keys that differ from a schema
// key only in case are rejected; other unknown keys are logged and ignored:
//
//	[database]
//	host = "localhost"
//	port = 5432
//	table = "postgres"
//	user = "postgres"
//	password = "password"
//
//	[scanner]
//	repeat = true
//	scan_delay = 60
//	port_range_start = 25565
//	port_range_end = 25565
//
//	[masscan]
//	config_file = "masscan.conf"
//
//	[player_tracking]
//	enabled = false
//	players = []
//
//	[country_tracking]
//	enabled = false
//	update_frequency = 48
//	ipinfo_token = ""
package config

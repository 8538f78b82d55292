package config

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// osExit is swapped out in tests so the fatal port range path can be observed.
var osExit = os.Exit

// Settings holds the whole scanner configuration. It is built once at startup,
// either by Default or by Load, and treated as read-only afterwards.
type Settings struct {
	Database        DatabaseSettings        `toml:"database"`
	Scanner         ScannerSettings         `toml:"scanner"`
	MasscanConfig   MasscanSettings         `toml:"masscan"`
	PlayerTracking  PlayerTrackingSettings  `toml:"player_tracking"`
	CountryTracking CountryTrackingSettings `toml:"country_tracking"`
}

// DatabaseSettings are the connection parameters of the results database.
type DatabaseSettings struct {
	Host     string `toml:"host"`
	Port     uint16 `toml:"port"`
	Table    string `toml:"table"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// ScannerSettings control how often and which port range is swept.
type ScannerSettings struct {
	RepeatScan       bool   `toml:"repeat"`
	ScanDelaySeconds uint64 `toml:"scan_delay"`
	PortRangeStart   uint16 `toml:"port_range_start"`
	PortRangeEnd     uint16 `toml:"port_range_end"`
}

type MasscanSettings struct {
	ConfigFilePath string `toml:"config_file"`
}

type PlayerTrackingSettings struct {
	Enabled bool     `toml:"enabled"`
	Players []string `toml:"players"`
}

type CountryTrackingSettings struct {
	Enabled              bool   `toml:"enabled"`
	UpdateFrequencyHours uint64 `toml:"update_frequency"`
	IPInfoToken          string `toml:"ipinfo_token"`
}

// Default returns the built-in settings used when no configuration file is given.
func Default() Settings {
	return Settings{
		Database: DatabaseSettings{
			Host:     "localhost",
			Port:     5432,
			Table:    "postgres",
			User:     "postgres",
			Password: "password",
		},
		Scanner: ScannerSettings{
			RepeatScan:       true,
			ScanDelaySeconds: 60,
			PortRangeStart:   25565,
			PortRangeEnd:     25565,
		},
		MasscanConfig: MasscanSettings{
			ConfigFilePath: "masscan.conf",
		},
		PlayerTracking: PlayerTrackingSettings{
			Enabled: false,
			Players: []string{},
		},
		CountryTracking: CountryTrackingSettings{
			Enabled:              false,
			UpdateFrequencyHours: 48,
			IPInfoToken:          "",
		},
	}
}

// Load reads a TOML configuration file into Settings.
//
// An error opening the file is returned as is. Anything wrong with the content
// (syntax, types, out-of-range values, missing keys, keys differing from the
// schema only in case) is reported as a *FormatError. Other unknown keys are
// logged and ignored.
func Load(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, err
	}
	defer f.Close()

	// A failed read after a successful open still parses what was obtained.
	data, err := io.ReadAll(f)
	if err != nil {
		slog.Default().Warn("Config read incomplete, parsing partial content.", "path", path, "bytes", len(data), "error", err)
	}

	s, err := decode(data)
	if err != nil {
		return Settings{}, &FormatError{Path: path, Err: err}
	}
	return s, nil
}

func decode(data []byte) (Settings, error) {
	var s Settings
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return Settings{}, err
	}
	if err := checkKeys(md); err != nil {
		return Settings{}, err
	}
	for _, key := range requiredKeys {
		if !md.IsDefined(key...) {
			return Settings{}, fmt.Errorf("missing required key %q", toml.Key(key).String())
		}
	}
	// The decoder wraps negative integers into unsigned fields, so the raw
	// values are checked separately.
	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return Settings{}, err
	}
	for _, key := range unsignedKeys {
		table, _ := raw[key[0]].(map[string]any)
		if n, ok := table[key[1]].(int64); ok && n < 0 {
			return Settings{}, fmt.Errorf("%d is out of range for uint64 (key %q)", n, toml.Key(key).String())
		}
	}
	if s.PlayerTracking.Players == nil {
		s.PlayerTracking.Players = []string{}
	}
	return s, nil
}

// checkKeys rejects keys that match a schema key only when case is ignored,
// since the decoder would silently apply them. Keys outside the schema are
// logged and ignored.
func checkKeys(md toml.MetaData) error {
	for _, key := range md.Keys() {
		name := key.String()
		if _, ok := schemaKeys[name]; ok {
			continue
		}
		if exact, ok := schemaKeysFolded[strings.ToLower(name)]; ok {
			return fmt.Errorf("key %q differs only in case from %q", name, exact)
		}
		if len(key) > 1 {
			if exact, ok := schemaKeysFolded[strings.ToLower(key[:1].String())]; ok && exact != key[0] {
				return fmt.Errorf("key %q differs only in case from %q", name, exact)
			}
		}
		slog.Default().Warn("Ignoring unknown config key.", "key", name)
	}
	return nil
}

var requiredKeys = [][]string{
	{"database", "host"},
	{"database", "port"},
	{"database", "table"},
	{"database", "user"},
	{"database", "password"},
	{"scanner", "repeat"},
	{"scanner", "scan_delay"},
	{"scanner", "port_range_start"},
	{"scanner", "port_range_end"},
	{"masscan", "config_file"},
	{"player_tracking", "enabled"},
	{"player_tracking", "players"},
	{"country_tracking", "enabled"},
	{"country_tracking", "update_frequency"},
	{"country_tracking", "ipinfo_token"},
}

var unsignedKeys = [][]string{
	{"scanner", "scan_delay"},
	{"country_tracking", "update_frequency"},
}

// schemaKeys holds every section and leaf key in its exact form;
// schemaKeysFolded maps the lower-cased form back to it.
var schemaKeys, schemaKeysFolded = func() (map[string]struct{}, map[string]string) {
	exact := map[string]struct{}{}
	folded := map[string]string{}
	for _, key := range requiredKeys {
		for _, k := range []toml.Key{toml.Key(key[:1]), toml.Key(key)} {
			exact[k.String()] = struct{}{}
			folded[strings.ToLower(k.String())] = k.String()
		}
	}
	return exact, folded
}()

// Encode writes s as TOML using the same keys Load expects. Unsigned values
// above the TOML integer range are rejected so the output always loads back.
func (s Settings) Encode(w io.Writer) error {
	if s.Scanner.ScanDelaySeconds > math.MaxInt64 {
		return fmt.Errorf("scanner.scan_delay %d exceeds the TOML integer range", s.Scanner.ScanDelaySeconds)
	}
	if s.CountryTracking.UpdateFrequencyHours > math.MaxInt64 {
		return fmt.Errorf("country_tracking.update_frequency %d exceeds the TOML integer range", s.CountryTracking.UpdateFrequencyHours)
	}
	if s.PlayerTracking.Players == nil {
		s.PlayerTracking.Players = []string{}
	}
	return toml.NewEncoder(w).Encode(s)
}

// Save writes s to path, replacing any existing file. Nothing is written when
// s cannot be encoded.
func Save(path string, s Settings) error {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return fmt.Errorf("encode config %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}

// Validate reports settings a scan cannot start with.
func (s Settings) Validate() error {
	if _, err := s.Scanner.PortCount(); err != nil {
		return err
	}
	return nil
}

// PortCount returns the number of ports in the configured range, or an error
// matching ErrInvalidPortRange when the range is inverted.
//
// The width is end-start with a floor of 1, so a single-port range counts as 1
// and an inclusive range of n ports counts as n-1.
func (s ScannerSettings) PortCount() (uint16, error) {
	start, end := s.PortRangeStart, s.PortRangeEnd
	if start > end {
		return 0, &PortRangeError{Start: start, End: end}
	}
	return max(1, end-start), nil
}

// TotalPorts is PortCount for callers that cannot continue without a valid
// range: an inverted range logs an error and exits the process with status 1.
func (s ScannerSettings) TotalPorts() uint16 {
	n, err := s.PortCount()
	if err != nil {
		slog.Default().Error("port_range_start cannot be greater than port_range_end!",
			"port_range_start", s.PortRangeStart,
			"port_range_end", s.PortRangeEnd,
		)
		osExit(1)
		return 0
	}
	return n
}

// ScanDelay is the pause between repeated sweeps.
func (s ScannerSettings) ScanDelay() time.Duration {
	return time.Duration(s.ScanDelaySeconds) * time.Second
}

func (s ScannerSettings) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Bool("repeat", s.RepeatScan),
		slog.Duration("scan_delay", s.ScanDelay()),
		slog.Int("port_range_start", int(s.PortRangeStart)),
		slog.Int("port_range_end", int(s.PortRangeEnd)),
	}
	if n, err := s.PortCount(); err == nil {
		attrs = append(attrs, slog.Int("total_ports", int(n)))
	}
	return slog.GroupValue(attrs...)
}

// Address joins host and port for dialing.
func (d DatabaseSettings) Address() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(int(d.Port)))
}

// LogValue keeps the password out of log output.
func (d DatabaseSettings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("host", d.Host),
		slog.Int("port", int(d.Port)),
		slog.String("table", d.Table),
		slog.String("user", d.User),
		slog.String("password", redact(d.Password)),
	)
}

// UpdateInterval is how often country data is refreshed.
func (c CountryTrackingSettings) UpdateInterval() time.Duration {
	return time.Duration(c.UpdateFrequencyHours) * time.Hour
}

func (c CountryTrackingSettings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", c.Enabled),
		slog.Duration("update_frequency", c.UpdateInterval()),
		slog.String("ipinfo_token", redact(c.IPInfoToken)),
	)
}

const redacted = "[redacted]"

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return redacted
}

package obd

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/spf13/viper"
	"obd-dashboard.klederson.com/data"
	"obd-dashboard.klederson.com/internal/errors"
)

// Catalog keys, as they appear in commands.json.
const (
	KeySpeed              = "speed"
	KeyRPM                = "rpm"
	KeyThrottle           = "throttle_pos"
	KeyEngineLoad         = "eng_load"
	KeyTimingAdvance      = "timing_advance"
	KeyCoolantTemp        = "coolant_temp"
	KeyIntakeTemp         = "intake_temp"
	KeyOilTemp            = "oil_temp"
	KeyFuelPressure       = "fuel_pressure"
	KeyFuelRate           = "fuel_rate"
	KeyMAF                = "maf"
	KeyMaxMAF             = "max_maf"
	KeyRunTime            = "run_time"
	KeyDistanceSinceClear = "dist_since_dtc_cleared"
	KeyTimeSinceClear     = "time_since_dtc_cleared"
	KeyGetDTC             = "get_dtc"
	KeyClearDTC           = "clear_dtc"
)

// Catalog maps short metric names to adapter commands.
type Catalog struct {
	commands map[string]*Command
}

// DefaultCatalog parses the commands.json embedded in the binary.
func DefaultCatalog() *Catalog {
	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(data.Commands)); err != nil {
		panic(err)
	}
	c, err := catalogFrom(v, "embedded commands.json")
	if err != nil {
		panic(err)
	}
	return c
}

// LoadCatalog reads a JSON object of name -> command name. A missing or
// malformed file, or a command name the table does not know, is an error.
func LoadCatalog(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(errors.ErrCatalogLoad, err, "read %s", path)
	}
	return catalogFrom(v, path)
}

func catalogFrom(v *viper.Viper, src string) (*Catalog, error) {
	raw := v.AllSettings()
	if len(raw) == 0 {
		return nil, errors.Newf(errors.ErrCatalogLoad, "%s defines no commands", src)
	}

	mapping := make(map[string]string, len(raw))
	for key, val := range raw {
		name, ok := val.(string)
		if !ok {
			return nil, errors.Newf(errors.ErrCatalogLoad, "%s: %q must map to a command name, got %T", src, key, val)
		}
		mapping[key] = name
	}

	return newCatalog(mapping)
}

func newCatalog(mapping map[string]string) (*Catalog, error) {
	c := &Catalog{commands: make(map[string]*Command, len(mapping))}
	for key, name := range mapping {
		cmd, ok := Lookup(name)
		if !ok {
			return nil, errors.Newf(errors.ErrCatalogLoad, "unknown command %q for %q", name, key)
		}
		c.commands[key] = cmd
	}
	return c, nil
}

// Command returns the command bound to key.
func (c *Catalog) Command(key string) (*Command, bool) {
	cmd, ok := c.commands[key]
	return cmd, ok
}

// Keys lists the catalog's names, sorted.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.commands))
	for k := range c.commands {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *Catalog) String() string {
	return fmt.Sprintf("catalog(%d commands)", len(c.commands))
}

// Package obd talks to an ELM327-compatible OBD-II adapter over TCP and
// decodes the handful of mode 01/03/04 requests the dashboard needs.
package obd

import (
	"fmt"
	"strings"
)

// Kind distinguishes how a command's reply is interpreted.
type Kind int

const (
	KindValue Kind = iota
	KindTroubleCodes
	KindClearTroubleCodes
)

// Command is one OBD request with its decoder.
type Command struct {
	Name        string
	Description string
	Mode        byte
	PID         byte
	Bytes       int
	Unit        string
	Kind        Kind
	decode      func(data []byte) float64
}

// Request is the ASCII line sent to the adapter, e.g. "010D" or "03".
func (c *Command) Request() string {
	if c.Mode == 0x01 {
		return fmt.Sprintf("%02X%02X", c.Mode, c.PID)
	}
	return fmt.Sprintf("%02X", c.Mode)
}

func (c *Command) String() string { return c.Name }

// Response is a decoded reply. Null means the vehicle answered NO DATA or
// the payload was too short to decode.
type Response struct {
	Command *Command
	Value   float64
	Codes   []DTC
	Null    bool
}

// IsNull reports whether the response carries no usable value.
func (r Response) IsNull() bool { return r.Null }

func word(d []byte) float64 { return float64(int(d[0])*256 + int(d[1])) }

func percent(d []byte) float64 { return float64(d[0]) * 100 / 255 }

func temperature(d []byte) float64 { return float64(d[0]) - 40 }

var commands = map[string]*Command{
	"PIDS_A": {
		Name: "PIDS_A", Description: "Supported PIDs [01-20]",
		Mode: 0x01, PID: 0x00, Bytes: 4,
		decode: func(d []byte) float64 {
			return float64(uint32(d[0])<<24 | uint32(d[1])<<16 | uint32(d[2])<<8 | uint32(d[3]))
		},
	},
	"ENGINE_LOAD": {
		Name: "ENGINE_LOAD", Description: "Calculated Engine Load",
		Mode: 0x01, PID: 0x04, Bytes: 1, Unit: "%", decode: percent,
	},
	"COOLANT_TEMP": {
		Name: "COOLANT_TEMP", Description: "Engine Coolant Temperature",
		Mode: 0x01, PID: 0x05, Bytes: 1, Unit: "°C", decode: temperature,
	},
	"FUEL_PRESSURE": {
		Name: "FUEL_PRESSURE", Description: "Fuel Pressure",
		Mode: 0x01, PID: 0x0A, Bytes: 1, Unit: "kPa",
		decode: func(d []byte) float64 { return float64(d[0]) * 3 },
	},
	"INTAKE_PRESSURE": {
		Name: "INTAKE_PRESSURE", Description: "Intake Manifold Pressure",
		Mode: 0x01, PID: 0x0B, Bytes: 1, Unit: "kPa",
		decode: func(d []byte) float64 { return float64(d[0]) },
	},
	"RPM": {
		Name: "RPM", Description: "Engine RPM",
		Mode: 0x01, PID: 0x0C, Bytes: 2, Unit: "rpm",
		decode: func(d []byte) float64 { return word(d) / 4 },
	},
	"SPEED": {
		Name: "SPEED", Description: "Vehicle Speed",
		Mode: 0x01, PID: 0x0D, Bytes: 1, Unit: "km/h",
		decode: func(d []byte) float64 { return float64(d[0]) },
	},
	"TIMING_ADVANCE": {
		Name: "TIMING_ADVANCE", Description: "Timing Advance",
		Mode: 0x01, PID: 0x0E, Bytes: 1, Unit: "°",
		decode: func(d []byte) float64 { return float64(d[0])/2 - 64 },
	},
	"INTAKE_TEMP": {
		Name: "INTAKE_TEMP", Description: "Intake Air Temp",
		Mode: 0x01, PID: 0x0F, Bytes: 1, Unit: "°C", decode: temperature,
	},
	"MAF": {
		Name: "MAF", Description: "Air Flow Rate (MAF)",
		Mode: 0x01, PID: 0x10, Bytes: 2, Unit: "g/s",
		decode: func(d []byte) float64 { return word(d) / 100 },
	},
	"THROTTLE_POS": {
		Name: "THROTTLE_POS", Description: "Throttle Position",
		Mode: 0x01, PID: 0x11, Bytes: 1, Unit: "%", decode: percent,
	},
	"RUN_TIME": {
		Name: "RUN_TIME", Description: "Engine Run Time",
		Mode: 0x01, PID: 0x1F, Bytes: 2, Unit: "s", decode: word,
	},
	"DISTANCE_SINCE_DTC_CLEAR": {
		Name: "DISTANCE_SINCE_DTC_CLEAR", Description: "Distance traveled since codes cleared",
		Mode: 0x01, PID: 0x31, Bytes: 2, Unit: "km", decode: word,
	},
	// The adapter reports minutes; the dashboard keeps seconds.
	"TIME_SINCE_DTC_CLEARED": {
		Name: "TIME_SINCE_DTC_CLEARED", Description: "Time since trouble codes cleared",
		Mode: 0x01, PID: 0x4E, Bytes: 2, Unit: "s",
		decode: func(d []byte) float64 { return word(d) * 60 },
	},
	"MAX_MAF": {
		Name: "MAX_MAF", Description: "Maximum value for mass air flow sensor",
		Mode: 0x01, PID: 0x50, Bytes: 4, Unit: "g/s",
		decode: func(d []byte) float64 { return float64(d[0]) * 10 },
	},
	"OIL_TEMP": {
		Name: "OIL_TEMP", Description: "Engine oil temperature",
		Mode: 0x01, PID: 0x5C, Bytes: 1, Unit: "°C", decode: temperature,
	},
	"FUEL_RATE": {
		Name: "FUEL_RATE", Description: "Engine fuel rate",
		Mode: 0x01, PID: 0x5E, Bytes: 2, Unit: "L/h",
		decode: func(d []byte) float64 { return word(d) / 20 },
	},
	"GET_DTC": {
		Name: "GET_DTC", Description: "Get DTCs",
		Mode: 0x03, Kind: KindTroubleCodes,
	},
	"CLEAR_DTC": {
		Name: "CLEAR_DTC", Description: "Clear DTCs and Freeze data",
		Mode: 0x04, Kind: KindClearTroubleCodes,
	},
}

// Lookup finds a built-in command by name, case-insensitively.
func Lookup(name string) (*Command, bool) {
	cmd, ok := commands[strings.ToUpper(strings.TrimSpace(name))]
	return cmd, ok
}

// Decode interprets the data bytes that follow the mode/PID echo of a
// mode 01 reply.
func (c *Command) Decode(data []byte) Response {
	if c.decode == nil || len(data) < c.Bytes {
		return Response{Command: c, Null: true}
	}
	return Response{Command: c, Value: c.decode(data[:c.Bytes])}
}

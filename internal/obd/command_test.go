package obd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoders(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want float64
	}{
		{"SPEED", []byte{0x3C}, 60},
		{"RPM", []byte{0x1A, 0xF8}, 1726},
		{"THROTTLE_POS", []byte{0xFF}, 100},
		{"ENGINE_LOAD", []byte{0x00}, 0},
		{"TIMING_ADVANCE", []byte{0x94}, 10},
		{"COOLANT_TEMP", []byte{0x7B}, 83},
		{"INTAKE_TEMP", []byte{0x00}, -40},
		{"OIL_TEMP", []byte{0x82}, 90},
		{"FUEL_PRESSURE", []byte{0x64}, 300},
		{"FUEL_RATE", []byte{0x00, 0x64}, 5},
		{"MAF", []byte{0x03, 0xE8}, 10},
		{"MAX_MAF", []byte{0x19, 0, 0, 0}, 250},
		{"RUN_TIME", []byte{0x01, 0x00}, 256},
		{"DISTANCE_SINCE_DTC_CLEAR", []byte{0x00, 0x0C}, 12},
		{"TIME_SINCE_DTC_CLEARED", []byte{0x00, 0x02}, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := Lookup(tt.name)
			require.True(t, ok)

			resp := cmd.Decode(tt.data)
			assert.False(t, resp.IsNull())
			assert.InDelta(t, tt.want, resp.Value, 1e-9)
		})
	}
}

func TestDecodeShortPayloadIsNull(t *testing.T) {
	cmd, _ := Lookup("RPM")
	assert.True(t, cmd.Decode([]byte{0x1A}).IsNull())
}

func TestRequest(t *testing.T) {
	speed, _ := Lookup("speed")
	assert.Equal(t, "010D", speed.Request())

	dtc, _ := Lookup("GET_DTC")
	assert.Equal(t, "03", dtc.Request())

	clear, _ := Lookup("CLEAR_DTC")
	assert.Equal(t, "04", clear.Request())
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup("WARP_DRIVE")
	assert.False(t, ok)
}

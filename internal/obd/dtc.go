package obd

import "fmt"

// DTC is a stored diagnostic trouble code. Description is empty when the
// code is not in the lookup table.
type DTC struct {
	Code        string
	Description string
}

var dtcSystems = [4]byte{'P', 'C', 'B', 'U'}

// DecodeDTC turns the two raw bytes of a trouble code into its text form,
// e.g. 0x01 0x33 -> "P0133".
func DecodeDTC(a, b byte) string {
	return fmt.Sprintf("%c%d%X%02X", dtcSystems[a>>6], (a>>4)&0x03, a&0x0F, b)
}

// ParseDTCs decodes the payload of a mode 03 reply, without the 0x43
// echo. CAN replies lead with a count byte and carry exactly that many
// codes; legacy replies are bare pairs where all-zero pairs are padding.
func ParseDTCs(payload []byte, counted bool) []DTC {
	if counted {
		if len(payload) == 0 {
			return nil
		}
		n := 2 * int(payload[0])
		payload = payload[1:]
		if n < len(payload) {
			payload = payload[:n]
		}
	}

	var out []DTC
	for i := 0; i+1 < len(payload); i += 2 {
		a, b := payload[i], payload[i+1]
		if a == 0 && b == 0 {
			continue
		}
		code := DecodeDTC(a, b)
		out = append(out, DTC{Code: code, Description: DescribeDTC(code)})
	}
	return out
}

// DescribeDTC returns a human-readable description for a generic trouble
// code, or "" if it is unknown.
func DescribeDTC(code string) string {
	return dtcDescriptions[code]
}

var dtcDescriptions = map[string]string{
	"P0100": "Mass or Volume Air Flow Circuit Malfunction",
	"P0101": "Mass or Volume Air Flow Circuit Range/Performance Problem",
	"P0102": "Mass or Volume Air Flow Circuit Low Input",
	"P0103": "Mass or Volume Air Flow Circuit High Input",
	"P0113": "Intake Air Temperature Circuit High Input",
	"P0117": "Engine Coolant Temperature Circuit Low Input",
	"P0118": "Engine Coolant Temperature Circuit High Input",
	"P0128": "Coolant Temperature Below Thermostat Regulating Temperature",
	"P0130": "O2 Sensor Circuit Malfunction (Bank 1 Sensor 1)",
	"P0133": "O2 Sensor Circuit Slow Response (Bank 1 Sensor 1)",
	"P0171": "System Too Lean (Bank 1)",
	"P0172": "System Too Rich (Bank 1)",
	"P0174": "System Too Lean (Bank 2)",
	"P0175": "System Too Rich (Bank 2)",
	"P0300": "Random/Multiple Cylinder Misfire Detected",
	"P0301": "Cylinder 1 Misfire Detected",
	"P0302": "Cylinder 2 Misfire Detected",
	"P0303": "Cylinder 3 Misfire Detected",
	"P0304": "Cylinder 4 Misfire Detected",
	"P0325": "Knock Sensor 1 Circuit Malfunction (Bank 1)",
	"P0335": "Crankshaft Position Sensor A Circuit Malfunction",
	"P0340": "Camshaft Position Sensor Circuit Malfunction",
	"P0401": "Exhaust Gas Recirculation Flow Insufficient Detected",
	"P0420": "Catalyst System Efficiency Below Threshold (Bank 1)",
	"P0430": "Catalyst System Efficiency Below Threshold (Bank 2)",
	"P0440": "Evaporative Emission Control System Malfunction",
	"P0442": "Evaporative Emission Control System Leak Detected (small leak)",
	"P0455": "Evaporative Emission Control System Leak Detected (gross leak)",
	"P0500": "Vehicle Speed Sensor Malfunction",
	"P0505": "Idle Control System Malfunction",
	"P0507": "Idle Control System RPM Higher Than Expected",
	"P0700": "Transmission Control System Malfunction",
	"C0035": "Left Front Wheel Speed Sensor Circuit",
	"C0040": "Right Front Wheel Speed Sensor Circuit",
	"C0045": "Left Rear Wheel Speed Sensor Circuit",
	"C0050": "Right Rear Wheel Speed Sensor Circuit",
	"B0001": "Driver Frontal Stage 1 Deployment Control",
	"U0100": "Lost Communication With ECM/PCM A",
}

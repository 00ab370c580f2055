package dashboard

import (
	"fmt"
	"strings"

	"obd-dashboard.klederson.com/internal/telemetry"
)

// FormatClock renders seconds as HH:MM:SS. Negative input shows as zero;
// hours are not wrapped at 24.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// TroubleCodeReport is the text shown after reading trouble codes.
func TroubleCodeReport(codes []telemetry.TroubleCode) string {
	if len(codes) == 0 {
		return "No trouble codes found.\n\nVehicle status: OK"
	}

	lines := make([]string, len(codes))
	for i, c := range codes {
		lines[i] = c.String()
	}
	return fmt.Sprintf("Found %d trouble code(s):\n\n%s\n\nPlease consult service manual for details.",
		len(codes), strings.Join(lines, "\n"))
}

const clearedNotice = "All diagnostic trouble codes cleared."

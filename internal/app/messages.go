package app

import "obd-dashboard.klederson.com/internal/telemetry"

// SnapshotMsg carries one refresh tick's readings onto the UI goroutine.
type SnapshotMsg struct {
	Snapshot telemetry.Snapshot
}

// TroubleCodesMsg reports the result of a trouble code read.
type TroubleCodesMsg struct {
	Codes []telemetry.TroubleCode
	Err   error
}

// ClearedMsg reports the result of a clear request.
type ClearedMsg struct {
	Err error
}

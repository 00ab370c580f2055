package telemetry

import (
	"context"
	"fmt"

	"obd-dashboard.klederson.com/internal/config"
	"obd-dashboard.klederson.com/internal/errors"
	"obd-dashboard.klederson.com/internal/logger"
	"obd-dashboard.klederson.com/internal/obd"
)

// Open picks the session's source. Without real it is Simulated. With real
// it loads the command catalog and dials the adapter; if either fails the
// session falls back to Simulated and the cause is returned alongside it
// so the caller can tell the user once.
func Open(ctx context.Context, real bool, s *config.Settings) (Source, error) {
	if !real {
		return NewSimulated(nil), nil
	}

	catalog, err := obd.LoadCatalog(s.CommandsFile)
	if err != nil {
		return NewSimulated(nil), err
	}
	logger.Debug().Strs("keys", catalog.Keys()).Str("file", s.CommandsFile).Msg("command catalog loaded")

	dialCtx, cancel := context.WithTimeout(ctx, s.ConnectTimeout)
	defer cancel()

	conn, err := obd.Dial(dialCtx, s.Address(), obd.WithQueryTimeout(s.QueryTimeout))
	if err != nil {
		return NewSimulated(nil), err
	}

	return NewLive(conn, catalog, nil), nil
}

// DowngradeNotice is the one-time message shown after Open fell back to
// simulated data because of err.
func DowngradeNotice(err error, s *config.Settings) string {
	var hint string
	switch {
	case errors.IsCode(err, errors.ErrCatalogLoad):
		hint = fmt.Sprintf("Check the command catalog at %s.", s.CommandsFile)
	case errors.IsCode(err, errors.ErrConnectionFailure):
		hint = fmt.Sprintf("Check that the adapter is reachable at %s.", s.Address())
	}
	if hint == "" {
		return fmt.Sprintf("%v\n\nRunning on simulated data.", err)
	}
	return fmt.Sprintf("%v\n%s\n\nRunning on simulated data.", err, hint)
}

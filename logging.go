package appctx

import "github.com/mrsarm/appctx/internal/logger"

// Logging surface, re-exported from internal/logger.
type (
	Logger = logger.Logger
	Field  = logger.Field
)

var (
	NewProductionLogger  = logger.NewProductionLogger
	NewDevelopmentLogger = logger.NewDevelopmentLogger
	NewNoopLogger        = logger.NewNoopLogger
	GetGlobalLogger      = logger.GetGlobalLogger
	SetGlobalLogger      = logger.SetGlobalLogger

	// Field constructors.
	String   = logger.String
	Strings  = logger.Strings
	Int      = logger.Int
	Int64    = logger.Int64
	Bool     = logger.Bool
	Time     = logger.Time
	Duration = logger.Duration
	Err      = logger.Err
	Any      = logger.Any
)

package appctx

import "github.com/mrsarm/appctx/internal/env"

// Environment surface, re-exported from internal/env.
type (
	Environment = env.Environment
	Source      = env.Source
	MapSource   = env.MapSource
	EnvSource   = env.EnvSource
	FileSource  = env.FileSource
)

const (
	PriorityFile = env.PriorityFile
	PriorityMap  = env.PriorityMap
	PriorityEnv  = env.PriorityEnv
)

var (
	NewEnvironment   = env.New
	EmptyEnvironment = env.Empty
	NewMapSource     = env.NewMapSource
	NewEnvSource     = env.NewEnvSource
	NewFileSource    = env.NewFileSource
)

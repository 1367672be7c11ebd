package appctx

import (
	"github.com/mrsarm/appctx/internal/di"
	"github.com/mrsarm/appctx/internal/jsonx"
)

// MapperKey is the name the JSON mapper bean is registered under.
const MapperKey = "objectMapper"

// Mapper surface, re-exported from internal/jsonx.
type (
	Mapper        = jsonx.Mapper
	MapperOptions = jsonx.Options
)

var (
	NewMapper            = jsonx.New
	DefaultMapper        = jsonx.Default
	DefaultMapperOptions = jsonx.DefaultOptions
)

// RegisterMapper adds m to the container under MapperKey, typed so the
// facade can resolve it by type.
func RegisterMapper(c Container, m *Mapper) error {
	return di.RegisterValue(c, MapperKey, m)
}

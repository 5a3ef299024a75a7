package source

import (
	"context"

	"brickset/internal/table"
)

// Adapter loads one whole table.
type Adapter interface {
	Configure(any) error // driver-specific config struct
	Read(context.Context) (*table.Table, error)
	Close() error
}

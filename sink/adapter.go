package sink

import (
	"context"
	"fmt"

	"brickset/internal/table"
)

// Adapter is the common behaviour every sink exposes. Output is staged by
// Push and only becomes visible on Commit, so a run that fails part way
// leaves no partial output behind.
type Adapter interface {
	Configure(any) error                      // driver-specific config struct
	Push(context.Context, *table.Table) error // stage one table
	Commit() error                            // publish what was staged
	Close() error                             // discard anything uncommitted; idempotent
}

// Local is *optional*; sinks whose Commit only renames staged files on
// this host implement it. The runner commits them after every other sink,
// so a failed remote publish leaves no local output in place.
type Local interface {
	Local()
}

/*──────── registry ───────*/

type factory = func() Adapter

var reg = map[string]factory{}

func Register(name string, f factory) { reg[name] = f }

func NewAdapter(name string) (Adapter, error) {
	if f, ok := reg[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("unknown sink %q", name)
}

package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/isNotOkay/universal-query-playground-api/query"
)

// ErrNotConfigured means the request named an engine whose backing store was
// never configured (no workbook path, or no database DSN).
var ErrNotConfigured = errors.New("engine not configured")

// Executor is what both engines look like to the dispatcher.
type Executor interface {
	Execute(ctx context.Context, req *query.Request) (*query.Result, error)
}

// Dispatcher routes a request to one of the two engines by name. That is all
// it does; anything smarter belongs in the engines.
type Dispatcher struct {
	Relational Executor
	Tabular    Executor
}

func (self *Dispatcher) Execute(ctx context.Context, req *query.Request) (*query.Result, error) {
	engine, err := query.ParseEngine(req.Engine)
	if err != nil {
		return nil, err
	}
	var target Executor
	switch engine {
	case query.EngineRelational:
		target = self.Relational
	default:
		target = self.Tabular
	}
	if target == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotConfigured, req.Engine)
	}
	return target.Execute(ctx, req)
}

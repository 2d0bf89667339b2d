// Package operator implements unit-aware operations on labeled arrays: binary operators that
// check, convert and propagate units, and unary transformations of annotated arrays.
//
// Every operation runs in two phases. A dry run applies the operation to placeholder quantities
// to derive the unit of the result and to reject incompatible units before any bulk work. The
// real operation then runs block-wise over the array data and the result is stamped with the
// unit obtained in the dry run.
package operator

import (
	"sync"

	"github.com/go-logr/logr"
	ctrllog "sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/l7mp/xunits/pkg/units"
)

// Options configures a Dispatcher.
type Options struct {
	// Equivalencies are used by every conversion the dispatcher makes.
	Equivalencies []units.Equivalency
	// Concurrency bounds the number of blocks processed in parallel. Zero means one.
	Concurrency int
	// Logger is the logger of the dispatcher. Defaults to the controller-runtime logger.
	Logger logr.Logger
}

// Dispatcher runs unit-aware operations.
type Dispatcher struct {
	equivalencies []units.Equivalency
	concurrency   int
	log           logr.Logger
}

// New creates a new dispatcher.
func New(opts Options) *Dispatcher {
	logger := opts.Logger
	if logger.GetSink() == nil {
		logger = ctrllog.Log
	}
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Dispatcher{
		equivalencies: append([]units.Equivalency{}, opts.Equivalencies...),
		concurrency:   concurrency,
		log:           logger.WithName("dispatcher"),
	}
}

var (
	defaultDispatcher *Dispatcher
	defaultLock       sync.RWMutex
)

// DefaultDispatcher returns the dispatcher used by the package-level functions.
func DefaultDispatcher() *Dispatcher {
	defaultLock.RLock()
	d := defaultDispatcher
	defaultLock.RUnlock()
	if d != nil {
		return d
	}

	defaultLock.Lock()
	defer defaultLock.Unlock()
	if defaultDispatcher == nil {
		defaultDispatcher = New(Options{Logger: ctrllog.Log.WithName("xunits")})
	}
	return defaultDispatcher
}

// SetDefault replaces the dispatcher used by the package-level functions.
func SetDefault(d *Dispatcher) {
	defaultLock.Lock()
	defer defaultLock.Unlock()
	defaultDispatcher = d
}

// Equivalencies returns the equivalencies of the dispatcher.
func (d *Dispatcher) Equivalencies() []units.Equivalency {
	return append([]units.Equivalency{}, d.equivalencies...)
}

// Concurrency returns the number of blocks the dispatcher processes in parallel.
func (d *Dispatcher) Concurrency() int { return d.concurrency }

func (d *Dispatcher) withEquivalencies(eqs []units.Equivalency) []units.Equivalency {
	return append(d.Equivalencies(), eqs...)
}

package wavecx

import (
	"time"

	"github.com/wavecx/wavecx-go/pkg/targetedcontent"
)

// Operation names a remote call made by the provider.
type Operation string

const (
	OperationInitiateSession Operation = "initiate-session"
	OperationSessionStarted  Operation = Operation(targetedcontent.EventSessionStarted)
	OperationSessionRefresh  Operation = Operation(targetedcontent.EventSessionRefresh)
)

// Observer receives provider activity, e.g. for metrics.
// Implementations must be fast and must not call back into the provider.
type Observer interface {
	RemoteCall(op Operation, took time.Duration, err error)
	EventQueued(kind EventKind)
	ContentPresented(pt targetedcontent.PresentationType)
	ContentDismissed()
}

type nopObserver struct{}

func (nopObserver) RemoteCall(Operation, time.Duration, error)        {}
func (nopObserver) EventQueued(EventKind)                             {}
func (nopObserver) ContentPresented(targetedcontent.PresentationType) {}
func (nopObserver) ContentDismissed()                                 {}

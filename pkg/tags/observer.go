package tags

import "github.com/vango-dev/tagkit/pkg/capture"

// Observer receives rendering events. Implementations must be safe for
// concurrent use when the Renderer is shared between goroutines.
type Observer interface {
	// TagRendered is called once per built tag with the markup size in bytes.
	TagRendered(name string, shape Shape, size int)

	// CaptureFinished is called after a block was captured. err is the
	// block's error, if any.
	CaptureFinished(kind capture.Kind, err error)
}

// nopObserver discards every event.
type nopObserver struct{}

func (nopObserver) TagRendered(string, Shape, int)       {}
func (nopObserver) CaptureFinished(capture.Kind, error) {}

// Observers fans events out to every observer in the list.
type Observers []Observer

// TagRendered forwards to every observer.
func (o Observers) TagRendered(name string, shape Shape, size int) {
	for _, obs := range o {
		obs.TagRendered(name, shape, size)
	}
}

// CaptureFinished forwards to every observer.
func (o Observers) CaptureFinished(kind capture.Kind, err error) {
	for _, obs := range o {
		obs.CaptureFinished(kind, err)
	}
}

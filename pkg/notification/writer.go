package notification

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/raykavin/ratebot/pkg/core"
)

// Writer prints messages instead of sending them, used for dry runs
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Send implements core.Notifier
func (w *Writer) Send(_ context.Context, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := fmt.Fprintf(w.out, "%s\n", text); err != nil {
		return &core.DeliveryError{Chat: "stdout", Err: err}
	}
	return nil
}

package shared

import (
	"fmt"

	"github.com/atotto/clipboard"
)

var writeClipboard = clipboard.WriteAll

// CopyToClipboard writes text to the system clipboard.
//
// Callers show their confirmation affordance only after this returns nil,
// mirroring the async write-then-confirm contract of the copy actions.
func CopyToClipboard(text string) error {
	if err := writeClipboard(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

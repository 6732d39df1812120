// Package clipboard copies text to the system clipboard, falling back to an
// OSC52 escape sequence when no native clipboard is reachable (ssh, tmux).
package clipboard

import (
	atotto "github.com/atotto/clipboard"

	"github.com/andareed/siftly-changepoints/logging"
)

// native is swapped out in tests.
var native = atotto.WriteAll

func Copy(text string) error {
	if !atotto.Unsupported {
		err := native(text)
		if err == nil {
			logging.Infof("Clipboard: copied %d bytes", len(text))
			return nil
		}
		logging.Warnf("Clipboard: native copy failed: %v", err)
	}
	return copyOSC52(text)
}

package hero

import (
	"errors"
	"fmt"
)

var (
	ErrStateReused        = errors.New("hero: state instance reused")
	ErrTransitionInStop   = errors.New("hero: transition requested while a state is stopping")
	ErrNilState           = errors.New("hero: nil state")
	ErrCarriedRefCount    = errors.New("hero: invalid carried item refcount")
	ErrMissingCarriedItem = errors.New("hero: missing carried item")
	ErrHookshotStarted    = errors.New("hero: hookshot already started")
	ErrUnknownState       = errors.New("hero: unknown state")
	ErrUnknownCommand     = errors.New("hero: unknown command")
)

// invariant aborts on a broken ownership or transition rule. Recovering
// callers can errors.Is the panic value against the sentinel.
func invariant(sentinel error, format string, args ...any) {
	panic(fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)))
}

package term

import "reflect"

// termPtr returns t's pointer identity as a uintptr, used only to build
// the hashstructure bucket key in Factory.share; it is never dereferenced
// back into a pointer, so this does not defeat the garbage collector.
func termPtr(t *Term) uintptr {
	return reflect.ValueOf(t).Pointer()
}

//go:build !linux || !(arm || arm64) || disablegpio

package main

// newHardwareBackend is the fallback for builds without GPIO support.  Use
// the "sim" backend on these machines.
func newHardwareBackend() (Backend, error) {
    return nil, ErrGPIOUnavailable
}

//go:build !((linux && cgo) || windows || darwin)

package main

// newSidetone returns the backend unchanged: audio output needs cgo on Linux.
func newSidetone(b Backend, frequency float64, logger *EventLogger) (Backend, error) {
    logger.Log("sidetone", "audio requires cgo on linux, sidetone disabled")
    return b, nil
}

package plruntime

import "time"

// Stats counts what one Run did.
type Stats struct {
	Steps    int64
	Calls    int64
	MaxDepth int
	Outputs  int
	Inputs   int
	Elapsed  time.Duration
}

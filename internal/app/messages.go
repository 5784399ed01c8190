package app

import "time"

// PlayMsg advances the step cursor while playing.
type PlayMsg time.Time

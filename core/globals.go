package core

import "errors"

var (
	// ErrMissingCredential means no CrUX API key or proxy URL was supplied.
	ErrMissingCredential = errors.New("missing CrUX API key or proxy URL")

	// ErrNoTargets means the target list was empty after normalization.
	ErrNoTargets = errors.New("no target domains given")

	// ErrNoMetrics means a snapshot carried none of the tracked metrics.
	ErrNoMetrics = errors.New("no metrics found")
)

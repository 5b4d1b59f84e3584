package motif

import "errors"

// Sentinel errors returned by the engine. Callers should test with errors.Is;
// returned errors wrap these with detail.
var (
	// ErrStructural means a motif node had no edge to the backbone when it was
	// chosen for expansion. Empty and disconnected motifs produce it.
	ErrStructural = errors.New("structural error")

	// ErrInvalidHint means a hint names a motif or host node that does not exist.
	ErrInvalidHint = errors.New("invalid hint")

	// ErrQueueFull means the number of pending backbones exceeded the
	// configured ceiling.
	ErrQueueFull = errors.New("pending backbone limit exceeded")

	// ErrUnknownPolicy is returned by ParsePolicy.
	ErrUnknownPolicy = errors.New("unknown queue policy")
)

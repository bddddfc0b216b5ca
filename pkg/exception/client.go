package exception

import "github.com/yanun0323/errors"

// Client errors
var (
	// ErrForeignCallFailure is returned when a catastrophic failure was
	// intercepted at the foreign boundary. The handle is Faulted and must
	// be discarded; only Close is still legal on it.
	ErrForeignCallFailure = errors.New("client: catastrophic foreign call failure")

	// ErrClientFaulted is returned for any operation on a Faulted handle.
	// The foreign resource is never touched again once Faulted.
	ErrClientFaulted = errors.New("client: handle is faulted")

	ErrClientDisposed = errors.New("client: handle is disposed")

	// ErrCancelled is returned when a retrieval operation is cancelled or
	// times out. The handle stays Healthy.
	ErrCancelled = errors.New("client: operation cancelled")

	ErrNilTransport    = errors.New("client: nil transport")
	ErrNilConsumer     = errors.New("client: nil record consumer")
	ErrEmptyDataset    = errors.New("client: empty dataset")
	ErrNoSymbols       = errors.New("client: no symbols to subscribe")
	ErrEmptySymbol     = errors.New("client: empty symbol")
	ErrTooManySymbols  = errors.New("client: symbol count exceeds limit")
	ErrOversizeSymbol  = errors.New("client: symbol exceeds length limit")
	ErrUnknownDataKind = errors.New("client: unknown data kind")
)

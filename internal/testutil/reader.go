package testutil

import "errors"

// ErrInjected is returned by test doubles configured to fail.
var ErrInjected = errors.New("injected failure")

// FailingReader fails every Read.
type FailingReader struct{}

func (*FailingReader) Read([]byte) (int, error) { return 0, ErrInjected }

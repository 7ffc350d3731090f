package errs

// Failure kinds of the cart core. Callers attach them with Mark and test with Is.
var (
	// Sync errors
	ErrFetchFailed       = New("cart fetch failed")
	ErrMutationRejected  = New("cart mutation rejected")
	ErrStockExhausted    = New("stock exhausted")
	ErrCartDisabled      = New("cart disabled")
	ErrLineEmpty         = New("cart line empty")
	ErrMalformedResponse = New("malformed response")

	// Order errors
	ErrCartEmpty         = New("cart empty")
	ErrOrderConflict     = New("order already pending")
	ErrOrderCommitFailed = New("order commit failed")

	// Transport errors
	ErrBackendUnavailable = New("backend unavailable")
	ErrCatalogUnavailable = New("catalog unavailable")
)

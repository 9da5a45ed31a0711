package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrInsufficientStock
	ErrStoreInactive
	ErrItemNotAtStore
	ErrAlreadyDelivered
	ErrInvalidStatus
	ErrAllocationExhausted
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:             "success",
	ErrInternal:            "error internal",
	ErrNotFound:            "data not found",
	ErrInvalidRequest:      "invalid request",
	ErrUnauthorize:         "unauthorize request",
	ErrInsufficientStock:   "insufficient stock",
	ErrStoreInactive:       "store is not active",
	ErrItemNotAtStore:      "item has no stock record at store",
	ErrAlreadyDelivered:    "purchase order already delivered",
	ErrInvalidStatus:       "invalid status for this operation",
	ErrAllocationExhausted: "identifier allocation attempts exhausted",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:             http.StatusOK,
	ErrInternal:            http.StatusInternalServerError,
	ErrNotFound:            http.StatusBadRequest,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrUnauthorize:         http.StatusUnauthorized,
	ErrInsufficientStock:   http.StatusBadRequest,
	ErrStoreInactive:       http.StatusBadRequest,
	ErrItemNotAtStore:      http.StatusBadRequest,
	ErrAlreadyDelivered:    http.StatusConflict,
	ErrInvalidStatus:       http.StatusBadRequest,
	ErrAllocationExhausted: http.StatusInternalServerError,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:             "0000",
	ErrInternal:            "0001",
	ErrNotFound:            "0002",
	ErrInvalidRequest:      "0003",
	ErrUnauthorize:         "0004",
	ErrInsufficientStock:   "0005",
	ErrStoreInactive:       "0006",
	ErrItemNotAtStore:      "0007",
	ErrAlreadyDelivered:    "0008",
	ErrInvalidStatus:       "0009",
	ErrAllocationExhausted: "0010",
}

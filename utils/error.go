package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

// Missing-reference errors. Each is fatal to a single
// (location, component) unit of work; the pipeline logs the pair and
// continues with the remaining pairs.
var (
	ErrNoConsumingModels   = errors.New("no tractor models consume this component")
	ErrNoEligibleSuppliers = errors.New("no eligible suppliers for component at location")
	ErrNoForecast          = errors.New("no demand forecast found")
)

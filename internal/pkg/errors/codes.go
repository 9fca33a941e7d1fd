package errors

import "net/http"

var (
	ErrVehicleNotFound = New(
		"VEHICLE_NOT_FOUND",
		"Vehicle not found",
		http.StatusNotFound,
	)

	ErrJobNotFound = New(
		"JOB_NOT_FOUND",
		"Job not found",
		http.StatusNotFound,
	)

	ErrShipmentNotFound = New(
		"SHIPMENT_NOT_FOUND",
		"Shipment not found",
		http.StatusNotFound,
	)

	ErrPlanRunNotFound = New(
		"PLAN_RUN_NOT_FOUND",
		"Optimization run not found",
		http.StatusNotFound,
	)

	ErrInvalidEntityID = New(
		"INVALID_ENTITY_ID",
		"Invalid entity ID",
		http.StatusBadRequest,
	)

	ErrSolverUnavailable = New(
		"SOLVER_UNAVAILABLE",
		"Optimization solver is unavailable",
		http.StatusServiceUnavailable,
	)

	ErrSolverFailed = New(
		"SOLVER_FAILED",
		"Optimization solver returned an error",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

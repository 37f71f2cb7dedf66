package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrEmptyRoute = New(
		"EMPTY_ROUTE",
		"Route polyline contains no coordinates",
		http.StatusBadRequest,
	)

	ErrInvalidSampleInterval = New(
		"INVALID_SAMPLE_INTERVAL",
		"Sample interval must be positive",
		http.StatusBadRequest,
	)

	ErrEmptyObservations = New(
		"EMPTY_OBSERVATIONS",
		"Weather observation set is empty",
		http.StatusBadRequest,
	)

	ErrInvalidForecastRange = New(
		"INVALID_FORECAST_RANGE",
		"Forecast range is out of bounds",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrAddressNotFound = New(
		"ADDRESS_NOT_FOUND",
		"Address could not be geocoded",
		http.StatusNotFound,
	)

	ErrGeocodingFailed = New(
		"GEOCODING_FAILED",
		"Geocoding provider request failed",
		http.StatusBadGateway,
	)

	ErrDirectionsFailed = New(
		"DIRECTIONS_FAILED",
		"Directions provider request failed",
		http.StatusBadGateway,
	)

	ErrUpstreamFetchFailed = New(
		"UPSTREAM_FETCH_FAILED",
		"Weather provider request failed",
		http.StatusBadGateway,
	)

	// ErrCacheUnavailable никогда не отдаётся клиенту: вызывающий код
	// обязан трактовать его как промах кеша и идти к провайдеру.
	ErrCacheUnavailable = New(
		"CACHE_UNAVAILABLE",
		"Weather cache backend unavailable",
		http.StatusServiceUnavailable,
	)

	// ErrDescriptionFailed гасится детерминированным fallback-описанием.
	ErrDescriptionFailed = New(
		"DESCRIPTION_GENERATION_FAILED",
		"Narrative generator unavailable",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

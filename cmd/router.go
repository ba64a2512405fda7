package main

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
)

// routes обработчики API
type routes struct {
	// Пользователи
	registerUser http.HandlerFunc
	getUser      http.HandlerFunc
	updateUser   http.HandlerFunc
	deleteUser   http.HandlerFunc

	// Объекты
	createProperty      http.HandlerFunc
	getProperty         http.HandlerFunc
	getUserProperties   http.HandlerFunc
	deleteProperty      http.HandlerFunc
	getPropertyBookings http.HandlerFunc

	// Бронирования
	createBooking    http.HandlerFunc
	getBooking       http.HandlerFunc
	setBookingStatus http.HandlerFunc
	getUserBookings  http.HandlerFunc

	// Отзывы
	createReview       http.HandlerFunc
	getPropertyReviews http.HandlerFunc
}

type routerOptions struct {
	requestTimeout time.Duration
	metrics        *metrics.Metrics // nil - метрики выключены
	metricsPath    string
	logger         middleware.Logger
}

func newRouter(h routes, opts routerOptions) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestID)
	if opts.logger != nil {
		r.Use(middleware.AccessLog(opts.logger))
	}
	if opts.metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.metrics))
		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(opts.metricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Timeout(opts.requestTimeout))

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/users", h.registerUser).Methods(http.MethodPost)
	api.HandleFunc("/users/{userId:[0-9]+}", h.getUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId:[0-9]+}/properties", h.getUserProperties).Methods(http.MethodGet)
	api.HandleFunc("/properties/{propertyId:[0-9]+}", h.getProperty).Methods(http.MethodGet)
	api.HandleFunc("/properties/{propertyId:[0-9]+}/reviews", h.getPropertyReviews).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Пользователи ---
	protected.HandleFunc("/users/{userId:[0-9]+}", h.updateUser).Methods(http.MethodPut)
	protected.HandleFunc("/users/{userId:[0-9]+}", h.deleteUser).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId:[0-9]+}/bookings", h.getUserBookings).Methods(http.MethodGet)

	// --- Объекты ---
	protected.HandleFunc("/properties", h.createProperty).Methods(http.MethodPost)
	protected.HandleFunc("/properties/{propertyId:[0-9]+}", h.deleteProperty).Methods(http.MethodDelete)
	protected.HandleFunc("/properties/{propertyId:[0-9]+}/bookings", h.getPropertyBookings).Methods(http.MethodGet)
	protected.HandleFunc("/properties/{propertyId:[0-9]+}/reviews", h.createReview).Methods(http.MethodPost)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", h.createBooking).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", h.getBooking).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/status", h.setBookingStatus).Methods(http.MethodPut)

	return r
}

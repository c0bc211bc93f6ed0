package domain

import "errors"

var (
	// ErrInvalidCredentials is returned for every login failure. It never
	// distinguishes an unknown identity from a wrong secret.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidCurrentPassword is returned when a supplied current password
	// does not verify against the stored hash.
	ErrInvalidCurrentPassword = errors.New("current password does not match")

	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role")

	ErrClientNotFound = errors.New("client not found")
	ErrPlanNotFound   = errors.New("plan not found")
	ErrPlanExists     = errors.New("plan already exists")

	ErrProductNotFound = errors.New("product not found")
	ErrPedidoNotFound  = errors.New("pedido not found")

	ErrInvalidTransition = errors.New("invalid status transition")

	// Authorization failures.
	ErrForbidden         = errors.New("access forbidden")
	ErrFeatureNotEnabled = errors.New("feature not enabled on client plan")
	ErrMissingTenant     = errors.New("client id required for feature check")
	ErrUnknownFeature    = errors.New("unknown feature")
)

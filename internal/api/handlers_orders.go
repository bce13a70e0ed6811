package api

import (
	"net/http"

	"github.com/asfandyar/optico-store/internal/models"
	"github.com/asfandyar/optico-store/internal/schema"
	"github.com/go-chi/chi/v5"
)

func (a *API) createOrder(w http.ResponseWriter, r *http.Request) {
	var in schema.OrderInput
	if err := decodeJSON(r.Body, &in); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Message)
		return
	}

	order := in.Model()

	// A logged-in caller owns the order regardless of what the body
	// claims; guests are identified by the guest fields only.
	if claims := claimsFrom(r.Context()); claims != nil {
		order.UserID = claims.Subject
	}

	created, err := a.storage.CreateOrder(r.Context(), order)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// listOrders returns every order for admins, and only the caller's own
// orders for regular users.
func (a *API) listOrders(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	userID := claims.Subject
	if claims.Role == models.RoleAdmin {
		userID = ""
	}

	orders, err := a.storage.ListOrders(r.Context(), userID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (a *API) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var in schema.OrderStatusInput
	if err := decodeJSON(r.Body, &in); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Message)
		return
	}

	order, err := a.storage.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), in.Status, in.TrackingNumber)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

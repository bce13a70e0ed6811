package api

import (
	"net/http"

	"github.com/asfandyar/optico-store/internal/schema"
	"github.com/asfandyar/optico-store/internal/store"
	"github.com/go-chi/chi/v5"
)

func (a *API) listProducts(w http.ResponseWriter, r *http.Request) {
	filter := store.ProductFilter{
		Category: r.URL.Query().Get("category"),
		Brand:    r.URL.Query().Get("brand"),
		Search:   r.URL.Query().Get("search"),
	}

	products, err := a.storage.ListProducts(r.Context(), filter)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (a *API) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := a.storage.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (a *API) createProduct(w http.ResponseWriter, r *http.Request) {
	var in schema.ProductInput
	if err := decodeJSON(r.Body, &in); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Message)
		return
	}

	product, err := a.storage.CreateProduct(r.Context(), in.Model())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (a *API) updateProduct(w http.ResponseWriter, r *http.Request) {
	var patch schema.ProductPatch
	if err := decodeJSON(r.Body, &patch); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := patch.Validate(); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Message)
		return
	}

	id := chi.URLParam(r, "id")
	existing, err := a.storage.GetProduct(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	merged := *existing
	patch.Apply(&merged)

	product, err := a.storage.UpdateProduct(r.Context(), id, merged)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// deleteProduct always answers 204: deletion is idempotent and unknown
// ids are not an error.
func (a *API) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := a.storage.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.storage.ListCategories(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, categories)
}

func (a *API) createCategory(w http.ResponseWriter, r *http.Request) {
	var in schema.CategoryInput
	if err := decodeJSON(r.Body, &in); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Message)
		return
	}

	category, err := a.storage.CreateCategory(r.Context(), in.Model())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, category)
}

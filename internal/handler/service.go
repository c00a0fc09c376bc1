package handler

import (
	"net/http"
	"strings"

	"github.com/meridian/catalog/api/internal/model"
	"github.com/meridian/catalog/api/internal/service"
)

// ServiceHandler handles service HTTP requests
type ServiceHandler struct {
	svc *service.CatalogService
}

// NewServiceHandler creates a new service handler
func NewServiceHandler(svc *service.CatalogService) *ServiceHandler {
	return &ServiceHandler{svc: svc}
}

// List handles GET /v1/services?search=&status=
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := model.ListQuery{
		Search: r.URL.Query().Get("search"),
		Status: model.ParseStatusFilter(r.URL.Query().Get("status")),
	}

	services := h.svc.List(r.Context(), q)

	WriteCollection(w, http.StatusOK, services, len(services))
}

// Create handles POST /v1/services
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeServiceInput(w, r)
	if !ok {
		return
	}

	svc, err := h.svc.Create(r.Context(), input)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, svc)
}

// Get handles GET /v1/services/{serviceId}
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("serviceId")
	if id == "" {
		WriteError(w, model.NewBadRequestError("service ID required"))
		return
	}

	svc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, svc)
}

// Update handles PUT /v1/services/{serviceId}
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("serviceId")
	if id == "" {
		WriteError(w, model.NewBadRequestError("service ID required"))
		return
	}

	input, ok := decodeServiceInput(w, r)
	if !ok {
		return
	}

	svc, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, svc)
}

// Delete handles DELETE /v1/services/{serviceId}
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("serviceId")
	if id == "" {
		WriteError(w, model.NewBadRequestError("service ID required"))
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// decodeServiceInput reads a service payload from either a form
// submission or a JSON body. Field values stay untyped text; the
// gateway owns parsing and validation. Returns ok=false after writing
// an error response.
func decodeServiceInput(w http.ResponseWriter, r *http.Request) (service.ServiceInput, bool) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "application/json") {
		var input service.ServiceInput
		if err := DecodeJSON(r, &input); err != nil {
			WriteError(w, model.NewBadRequestError("invalid request body"))
			return service.ServiceInput{}, false
		}
		return input, true
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, model.NewBadRequestError("invalid form submission"))
		return service.ServiceInput{}, false
	}

	return service.ServiceInput{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Price:       r.PostFormValue("price"),
		IsActive:    r.PostFormValue("isActive"),
		IsFeatured:  r.PostFormValue("isFeatured"),
	}, true
}

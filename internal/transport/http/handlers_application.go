package httptransport

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"scholarhub/internal/domain"
	"scholarhub/internal/validate"
)

// ApplicationService defines the application operations the transport depends on.
type ApplicationService interface {
	List(ctx context.Context) ([]domain.Application, error)
	GetByID(ctx context.Context, id string) (domain.Application, error)
	Create(ctx context.Context, args validate.Args) (domain.Application, error)
	Edit(ctx context.Context, id string, args validate.Args) (domain.Application, error)
	Remove(ctx context.Context, id string) (domain.Application, error)
}

type applicationHandler struct {
	svc ApplicationService
}

func (h *applicationHandler) register(r chi.Router) {
	r.Route("/applications", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.edit)
		r.Delete("/{id}", h.remove)
	})
}

func (h *applicationHandler) list(w http.ResponseWriter, r *http.Request) {
	applications, err := h.svc.List(r.Context())
	writeResult(w, http.StatusOK, applications, err)
}

func (h *applicationHandler) get(w http.ResponseWriter, r *http.Request) {
	application, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	writeResult(w, http.StatusOK, application, err)
}

func (h *applicationHandler) create(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeResult(w, 0, nil, err)
		return
	}
	application, err := h.svc.Create(r.Context(), args)
	writeResult(w, http.StatusCreated, application, err)
}

func (h *applicationHandler) edit(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeResult(w, 0, nil, err)
		return
	}
	application, err := h.svc.Edit(r.Context(), chi.URLParam(r, "id"), args)
	writeResult(w, http.StatusOK, application, err)
}

func (h *applicationHandler) remove(w http.ResponseWriter, r *http.Request) {
	application, err := h.svc.Remove(r.Context(), chi.URLParam(r, "id"))
	writeResult(w, http.StatusOK, application, err)
}

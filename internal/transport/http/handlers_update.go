package httptransport

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"scholarhub/internal/domain"
	"scholarhub/internal/validate"
)

// UpdateService defines the project-update operations the transport depends on.
type UpdateService interface {
	List(ctx context.Context) ([]domain.Update, error)
	GetByID(ctx context.Context, id string) (domain.Update, error)
	BySubject(ctx context.Context, subject string) ([]domain.Update, error)
	Create(ctx context.Context, args validate.Args) (domain.Update, error)
	Edit(ctx context.Context, id string, args validate.Args) (domain.Update, error)
	Remove(ctx context.Context, id string) (domain.Update, error)
}

type updateHandler struct {
	svc UpdateService
}

func (h *updateHandler) register(r chi.Router) {
	r.Route("/updates", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/subject/{subject}", h.bySubject)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.edit)
		r.Delete("/{id}", h.remove)
	})
}

func (h *updateHandler) list(w http.ResponseWriter, r *http.Request) {
	updates, err := h.svc.List(r.Context())
	writeResult(w, http.StatusOK, updates, err)
}

func (h *updateHandler) get(w http.ResponseWriter, r *http.Request) {
	update, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	writeResult(w, http.StatusOK, update, err)
}

func (h *updateHandler) bySubject(w http.ResponseWriter, r *http.Request) {
	updates, err := h.svc.BySubject(r.Context(), chi.URLParam(r, "subject"))
	writeResult(w, http.StatusOK, updates, err)
}

func (h *updateHandler) create(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeResult(w, 0, nil, err)
		return
	}
	update, err := h.svc.Create(r.Context(), args)
	writeResult(w, http.StatusCreated, update, err)
}

func (h *updateHandler) edit(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeResult(w, 0, nil, err)
		return
	}
	update, err := h.svc.Edit(r.Context(), chi.URLParam(r, "id"), args)
	writeResult(w, http.StatusOK, update, err)
}

func (h *updateHandler) remove(w http.ResponseWriter, r *http.Request) {
	update, err := h.svc.Remove(r.Context(), chi.URLParam(r, "id"))
	writeResult(w, http.StatusOK, update, err)
}

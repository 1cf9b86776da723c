package httptransport

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"scholarhub/internal/domain"
	"scholarhub/internal/validate"
)

// AccountService defines the account operations the transport depends on.
type AccountService interface {
	List(ctx context.Context) ([]domain.Account, error)
	GetByID(ctx context.Context, id string) (domain.Account, error)
	SearchByName(ctx context.Context, term string) ([]domain.Account, error)
	Create(ctx context.Context, args validate.Args) (domain.Account, error)
	Edit(ctx context.Context, id string, args validate.Args) (domain.Account, error)
	Remove(ctx context.Context, id string) (domain.Account, error)
}

type accountHandler struct {
	svc AccountService
}

func (h *accountHandler) register(r chi.Router) {
	r.Route("/accounts", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/search", h.search)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.edit)
		r.Delete("/{id}", h.remove)
	})
}

func (h *accountHandler) list(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.List(r.Context())
	writeResult(w, http.StatusOK, accounts, err)
}

func (h *accountHandler) get(w http.ResponseWriter, r *http.Request) {
	account, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	writeResult(w, http.StatusOK, account, err)
}

func (h *accountHandler) search(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.SearchByName(r.Context(), r.URL.Query().Get("name"))
	writeResult(w, http.StatusOK, accounts, err)
}

func (h *accountHandler) create(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeResult(w, 0, nil, err)
		return
	}
	account, err := h.svc.Create(r.Context(), args)
	writeResult(w, http.StatusCreated, account, err)
}

func (h *accountHandler) edit(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeResult(w, 0, nil, err)
		return
	}
	account, err := h.svc.Edit(r.Context(), chi.URLParam(r, "id"), args)
	writeResult(w, http.StatusOK, account, err)
}

func (h *accountHandler) remove(w http.ResponseWriter, r *http.Request) {
	account, err := h.svc.Remove(r.Context(), chi.URLParam(r, "id"))
	writeResult(w, http.StatusOK, account, err)
}

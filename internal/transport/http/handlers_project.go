package httptransport

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"scholarhub/internal/domain"
	"scholarhub/internal/validate"
	"scholarhub/pkg/domerrors"
)

// ProjectService defines the project operations the transport depends on.
type ProjectService interface {
	List(ctx context.Context) ([]domain.Project, error)
	GetByID(ctx context.Context, id string) (domain.Project, error)
	ByDepartment(ctx context.Context, department string) ([]domain.Project, error)
	ByCreatedYearRange(ctx context.Context, min, max int) ([]domain.Project, error)
	SearchByTitle(ctx context.Context, term string) ([]domain.Project, error)
	ProfessorsOf(ctx context.Context, id string) ([]domain.Account, error)
	StudentsOf(ctx context.Context, id string) ([]domain.Account, error)
	Create(ctx context.Context, args validate.Args) (domain.Project, error)
	Edit(ctx context.Context, id string, args validate.Args) (domain.Project, error)
	Remove(ctx context.Context, id string) (domain.Project, error)
}

type projectHandler struct {
	svc ProjectService
}

func (h *projectHandler) register(r chi.Router) {
	r.Route("/projects", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/search", h.search)
		r.Get("/created-year", h.byYearRange)
		r.Get("/department/{department}", h.byDepartment)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.edit)
		r.Delete("/{id}", h.remove)
		r.Get("/{id}/professors", h.professors)
		r.Get("/{id}/students", h.students)
	})
}

func (h *projectHandler) list(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.List(r.Context())
	writeResult(w, http.StatusOK, projects, err)
}

func (h *projectHandler) get(w http.ResponseWriter, r *http.Request) {
	project, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	writeResult(w, http.StatusOK, project, err)
}

func (h *projectHandler) search(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.SearchByTitle(r.Context(), r.URL.Query().Get("title"))
	writeResult(w, http.StatusOK, projects, err)
}

func (h *projectHandler) byDepartment(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.ByDepartment(r.Context(), chi.URLParam(r, "department"))
	writeResult(w, http.StatusOK, projects, err)
}

func (h *projectHandler) byYearRange(w http.ResponseWriter, r *http.Request) {
	min, err := yearParam(r, "min")
	if err != nil {
		writeResult(w, 0, nil, err)
		return
	}
	max, err := yearParam(r, "max")
	if err != nil {
		writeResult(w, 0, nil, err)
		return
	}
	projects, err := h.svc.ByCreatedYearRange(r.Context(), min, max)
	writeResult(w, http.StatusOK, projects, err)
}

func (h *projectHandler) professors(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.ProfessorsOf(r.Context(), chi.URLParam(r, "id"))
	writeResult(w, http.StatusOK, accounts, err)
}

func (h *projectHandler) students(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.StudentsOf(r.Context(), chi.URLParam(r, "id"))
	writeResult(w, http.StatusOK, accounts, err)
}

func (h *projectHandler) create(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeResult(w, 0, nil, err)
		return
	}
	project, err := h.svc.Create(r.Context(), args)
	writeResult(w, http.StatusCreated, project, err)
}

func (h *projectHandler) edit(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeResult(w, 0, nil, err)
		return
	}
	project, err := h.svc.Edit(r.Context(), chi.URLParam(r, "id"), args)
	writeResult(w, http.StatusOK, project, err)
}

func (h *projectHandler) remove(w http.ResponseWriter, r *http.Request) {
	project, err := h.svc.Remove(r.Context(), chi.URLParam(r, "id"))
	writeResult(w, http.StatusOK, project, err)
}

func yearParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domerrors.NewField(domerrors.CodeInvalidArgument, name, "is not a valid year")
	}
	return n, nil
}

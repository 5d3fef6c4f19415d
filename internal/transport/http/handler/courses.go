package handler

import (
	"net/http"

	"github.com/alterera/academy-api/internal/application/course"
	"github.com/alterera/academy-api/internal/domain"
	"github.com/alterera/academy-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// CourseHandler serves the public catalog and the authoring endpoints.
type CourseHandler struct {
	courses course.Service
}

func NewCourseHandler(courses course.Service) *CourseHandler {
	return &CourseHandler{courses: courses}
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.courses.ListPublished(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *CourseHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	c, err := h.courses.GetPublishedBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCourseRequest
	if err := decodeJSON(r, &req); err != nil {
		httpError(w, err)
		return
	}
	c, err := h.courses.Create(r.Context(), middleware.SessionFrom(r.Context()), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateCourseRequest
	if err := decodeJSON(r, &req); err != nil {
		httpError(w, err)
		return
	}
	c, err := h.courses.Update(r.Context(), middleware.SessionFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.courses.Delete(r.Context(), middleware.SessionFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "course deleted"})
}

// ListMine returns the authenticated instructor's courses, drafts included.
func (h *CourseHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	list, err := h.courses.ListMine(r.Context(), middleware.SessionFrom(r.Context()))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	classroomdomain "investimon-go/internal/domain/classroom"
	"investimon-go/internal/transport/httpserver/middleware"
)

type createClassroomRequest struct {
	Name    string  `json:"name"`
	Grade   *string `json:"grade"`
	Subject *string `json:"subject"`
}

type addStudentRequest struct {
	StudentID string `json:"studentId"`
}

type bulkStudentsRequest struct {
	Students []classroomdomain.StudentInput `json:"students"`
}

func (h *Handlers) CreateClassroom(w http.ResponseWriter, r *http.Request) {
	var req createClassroomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Classrooms.CreateClassroom(r.Context(), caller.ID, classroomdomain.CreateInput{
		Name:    req.Name,
		Grade:   req.Grade,
		Subject: req.Subject,
	})
	if err != nil {
		switch {
		case errors.Is(err, classroomdomain.ErrUserNotFound):
			h.log.BusinessError("classrooms.create: user not found", err, "user_id", caller.ID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		case errors.Is(err, classroomdomain.ErrNotTeacher):
			h.log.BusinessError("classrooms.create: not a teacher", err, "user_id", caller.ID)
			writeError(w, http.StatusForbidden, "not_teacher", "only teachers can manage classrooms")
		default:
			h.log.InternalError("classrooms.create: create failed", err, "user_id", caller.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

func (h *Handlers) ListClassrooms(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	classrooms, err := h.Classrooms.TeacherClassrooms(r.Context(), caller.ID)
	if err != nil {
		h.log.InternalError("classrooms.list: list failed", err, "user_id", caller.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, classrooms)
}

func (h *Handlers) DeactivateClassroom(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	classroomID := strings.TrimSpace(chi.URLParam(r, "id"))
	if classroomID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	if err := h.Classrooms.DeactivateClassroom(r.Context(), caller.ID, classroomID); err != nil {
		switch {
		case errors.Is(err, classroomdomain.ErrClassroomNotFound):
			h.log.BusinessError("classrooms.deactivate: classroom not found", err, "user_id", caller.ID, "classroom_id", classroomID)
			writeError(w, http.StatusNotFound, "classroom_not_found", "classroom not found")
		case errors.Is(err, classroomdomain.ErrNotTeacher):
			h.log.BusinessError("classrooms.deactivate: not a teacher", err, "user_id", caller.ID, "classroom_id", classroomID)
			writeError(w, http.StatusForbidden, "not_teacher", "only teachers can manage classrooms")
		case errors.Is(err, classroomdomain.ErrNotOwner):
			h.log.BusinessError("classrooms.deactivate: not the owner", err, "user_id", caller.ID, "classroom_id", classroomID)
			writeError(w, http.StatusForbidden, "not_owner", "classroom belongs to another teacher")
		default:
			h.log.InternalError("classrooms.deactivate: deactivate failed", err, "user_id", caller.ID, "classroom_id", classroomID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) AddClassroomStudent(w http.ResponseWriter, r *http.Request) {
	var req addStudentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.StudentID = strings.TrimSpace(req.StudentID)
	if req.StudentID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "studentId is required")
		return
	}

	classroomID := strings.TrimSpace(chi.URLParam(r, "id"))
	if classroomID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	if err := h.Classrooms.AddStudent(r.Context(), classroomID, req.StudentID); err != nil {
		switch {
		case errors.Is(err, classroomdomain.ErrClassroomNotFound):
			h.log.BusinessError("classrooms.add_student: classroom not found", err, "classroom_id", classroomID)
			writeError(w, http.StatusNotFound, "classroom_not_found", "classroom not found")
		case errors.Is(err, classroomdomain.ErrUserNotFound):
			h.log.BusinessError("classrooms.add_student: student not found", err, "classroom_id", classroomID, "student_id", req.StudentID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		default:
			h.log.InternalError("classrooms.add_student: add failed", err, "classroom_id", classroomID, "student_id", req.StudentID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListClassroomStudents(w http.ResponseWriter, r *http.Request) {
	classroomID := strings.TrimSpace(chi.URLParam(r, "id"))
	if classroomID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	students, err := h.Classrooms.ClassroomStudents(r.Context(), classroomID)
	if err != nil {
		if errors.Is(err, classroomdomain.ErrClassroomNotFound) {
			h.log.BusinessError("classrooms.students: classroom not found", err, "classroom_id", classroomID)
			writeError(w, http.StatusNotFound, "classroom_not_found", "classroom not found")
			return
		}
		h.log.InternalError("classrooms.students: list failed", err, "classroom_id", classroomID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, students)
}

func (h *Handlers) BulkCreateStudents(w http.ResponseWriter, r *http.Request) {
	var req bulkStudentsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if len(req.Students) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "students is required")
		return
	}

	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	classroomID := strings.TrimSpace(chi.URLParam(r, "id"))
	if classroomID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	results, err := h.Classrooms.BulkCreateStudents(r.Context(), caller.ID, classroomID, req.Students)
	if err != nil {
		switch {
		case errors.Is(err, classroomdomain.ErrClassroomNotFound):
			h.log.BusinessError("classrooms.bulk: classroom not found", err, "user_id", caller.ID, "classroom_id", classroomID)
			writeError(w, http.StatusNotFound, "classroom_not_found", "classroom not found")
		case errors.Is(err, classroomdomain.ErrNotTeacher):
			h.log.BusinessError("classrooms.bulk: not a teacher", err, "user_id", caller.ID, "classroom_id", classroomID)
			writeError(w, http.StatusForbidden, "not_teacher", "only teachers can manage classrooms")
		case errors.Is(err, classroomdomain.ErrNotOwner):
			h.log.BusinessError("classrooms.bulk: not the owner", err, "user_id", caller.ID, "classroom_id", classroomID)
			writeError(w, http.StatusForbidden, "not_owner", "classroom belongs to another teacher")
		default:
			h.log.InternalError("classrooms.bulk: bulk create failed", err, "user_id", caller.ID, "classroom_id", classroomID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, results)
}

package schools

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SoundInkube/internal/api/handlers"
	"github.com/m04kA/SMC-SoundInkube/internal/api/middleware"
	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/schools"
	"github.com/m04kA/SMC-SoundInkube/internal/service/schools/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidSchoolID     = "некорректный ID школы"
	msgInvalidEnrollmentID = "некорректный ID записи"
	msgInvalidQuery        = "некорректные параметры запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgSchoolNotFound      = "школа не найдена"
	msgEnrollmentNotFound  = "запись на курс не найдена"
	msgForbidden           = "доступ запрещен"
	msgEnrollmentFinal     = "завершенную запись нельзя изменить"
	msgInvalidInput        = "некорректные данные школы"
)

type Handler struct {
	service SchoolService
	logger  Logger
}

func NewHandler(service SchoolService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/schools
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /schools - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateSchoolRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /schools - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	school, err := h.service.Create(r.Context(), actor, req.toServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, schools.ErrAccessDenied):
			h.logger.Warn("POST /schools - Role not allowed: user_id=%d, role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schools.ErrInvalidInput):
			h.logger.Warn("POST /schools - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /schools - Failed to create school: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schools - School created successfully: school_id=%d, owner_id=%d", school.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, school)
}

// List GET /api/v1/schools
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET /schools - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), &models.ListSchoolsRequest{
		Location: handlers.QueryString(r, "location"),
		Page:     page,
	})
	if err != nil {
		h.logger.Error("GET /schools - Failed to list schools: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/schools/{schoolId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	schoolID, err := handlers.ParseID(r, "schoolId")
	if err != nil {
		h.logger.Warn("GET /schools/{id} - Invalid school ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSchoolID)
		return
	}

	school, err := h.service.GetByID(r.Context(), schoolID)
	if err != nil {
		switch {
		case errors.Is(err, schools.ErrSchoolNotFound):
			h.logger.Warn("GET /schools/{id} - School not found: school_id=%d", schoolID)
			handlers.RespondNotFound(w, msgSchoolNotFound)

		default:
			h.logger.Error("GET /schools/{id} - Failed to get school: school_id=%d, error=%v", schoolID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, school)
}

// Enroll POST /api/v1/schools/{schoolId}/enrollments
func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	schoolID, err := handlers.ParseID(r, "schoolId")
	if err != nil {
		h.logger.Warn("POST /schools/{id}/enrollments - Invalid school ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSchoolID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /schools/{id}/enrollments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	enrollment, err := h.service.Enroll(r.Context(), actor, schoolID)
	if err != nil {
		switch {
		case errors.Is(err, schools.ErrSchoolNotFound):
			h.logger.Warn("POST /schools/{id}/enrollments - School not found: school_id=%d", schoolID)
			handlers.RespondNotFound(w, msgSchoolNotFound)

		default:
			h.logger.Error("POST /schools/{id}/enrollments - Failed to enroll: school_id=%d, user_id=%d, error=%v",
				schoolID, actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schools/{id}/enrollments - Enrolled successfully: enrollment_id=%d, user_id=%d",
		enrollment.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, enrollment)
}

// MyEnrollments GET /api/v1/enrollments
func (h *Handler) MyEnrollments(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /enrollments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	page, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET /enrollments - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.ListMyEnrollments(r.Context(), actor, page)
	if err != nil {
		h.logger.Error("GET /enrollments - Failed to list enrollments: user_id=%d, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpdateEnrollmentStatus PATCH /api/v1/enrollments/{enrollmentId}
func (h *Handler) UpdateEnrollmentStatus(w http.ResponseWriter, r *http.Request) {
	enrollmentID, err := handlers.ParseID(r, "enrollmentId")
	if err != nil {
		h.logger.Warn("PATCH /enrollments/{id} - Invalid enrollment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEnrollmentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /enrollments/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateEnrollmentStatusRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /enrollments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	enrollment, err := h.service.UpdateEnrollmentStatus(r.Context(), actor, enrollmentID, domain.EnrollmentStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, schools.ErrEnrollmentNotFound):
			h.logger.Warn("PATCH /enrollments/{id} - Enrollment not found: enrollment_id=%d", enrollmentID)
			handlers.RespondNotFound(w, msgEnrollmentNotFound)

		case errors.Is(err, schools.ErrSchoolNotFound):
			h.logger.Warn("PATCH /enrollments/{id} - School not found: enrollment_id=%d", enrollmentID)
			handlers.RespondNotFound(w, msgSchoolNotFound)

		case errors.Is(err, schools.ErrAccessDenied):
			h.logger.Warn("PATCH /enrollments/{id} - Access denied: enrollment_id=%d, user_id=%d", enrollmentID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schools.ErrEnrollmentFinal):
			h.logger.Warn("PATCH /enrollments/{id} - Enrollment is final: enrollment_id=%d", enrollmentID)
			handlers.RespondBadRequest(w, msgEnrollmentFinal)

		case errors.Is(err, schools.ErrInvalidInput):
			h.logger.Warn("PATCH /enrollments/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /enrollments/{id} - Failed to update enrollment: enrollment_id=%d, error=%v", enrollmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /enrollments/{id} - Enrollment updated: enrollment_id=%d, status=%s", enrollmentID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, enrollment)
}

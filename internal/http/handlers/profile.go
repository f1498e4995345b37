package handlers

import (
	"net/http"

	"propmatch/internal/app"
	"propmatch/internal/domain/profile"
	"propmatch/internal/http/response"
)

type ProfileHandler struct {
	profiles *app.ProfileService
}

func NewProfileHandler(profiles *app.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type studentProfileRequest struct {
	Course          string   `json:"course"`
	Year            string   `json:"year"`
	Age             int      `json:"age"`
	InterestAreas   []string `json:"interest_areas"`
	TechnicalSkills []string `json:"technical_skills"`
	SoftSkills      []string `json:"soft_skills"`
	CVURL           string   `json:"cv_url"`
}

type companyProfileRequest struct {
	CompanyName  string `json:"company_name"`
	TaxID        string `json:"tax_id"`
	Website      string `json:"website"`
	Address      string `json:"address"`
	ContactPhone string `json:"contact_phone"`
}

type departmentProfileRequest struct {
	Department string `json:"department"`
}

// Me returns whichever profile kind belongs to the caller's role.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	p, err := h.profiles.GetForUser(r.Context(), actor.UserID, actor.Role)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	p, err := h.profiles.GetStudent(r.Context(), actor)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) UpsertStudent(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req studentProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	saved, err := h.profiles.UpsertStudent(r.Context(), actor, profile.StudentProfile{
		Course:          req.Course,
		Year:            req.Year,
		Age:             req.Age,
		InterestAreas:   req.InterestAreas,
		TechnicalSkills: req.TechnicalSkills,
		SoftSkills:      req.SoftSkills,
		CVURL:           req.CVURL,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, saved)
}

func (h *ProfileHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.profiles.ListStudents(r.Context(), actor)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ProfileHandler) RequestStudentDeletion(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	if err := h.profiles.RequestStudentDeletion(r.Context(), actor); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ProfileHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	profileID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.profiles.DeleteStudent(r.Context(), actor, profileID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ProfileHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	p, err := h.profiles.GetCompany(r.Context(), actor)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) UpsertCompany(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req companyProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	saved, err := h.profiles.UpsertCompany(r.Context(), actor, profile.CompanyProfile{
		CompanyName:  req.CompanyName,
		TaxID:        req.TaxID,
		Website:      req.Website,
		Address:      req.Address,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, saved)
}

func (h *ProfileHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	if _, ok := actorFromContext(r); !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.profiles.ListCompanies(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ProfileHandler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	p, err := h.profiles.GetDepartment(r.Context(), actor)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) UpsertDepartment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req departmentProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	saved, err := h.profiles.UpsertDepartment(r.Context(), actor, profile.DepartmentProfile{
		Department: req.Department,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, saved)
}

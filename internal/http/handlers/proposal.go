package handlers

import (
	"context"
	"net/http"
	"time"

	"propmatch/internal/app"
	"propmatch/internal/common"
	"propmatch/internal/domain/proposal"
	"propmatch/internal/http/response"
)

type ProposalHandler struct {
	proposals *app.ProposalService
}

func NewProposalHandler(proposals *app.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposals: proposals}
}

type proposalRequest struct {
	CompanyID           string   `json:"company_id,omitempty"`
	Title               string   `json:"title"`
	Type                string   `json:"type"`
	Description         string   `json:"description"`
	CandidateProfile    string   `json:"candidate_profile"`
	Location            string   `json:"location"`
	ApplicationDeadline string   `json:"application_deadline"`
	ContractType        string   `json:"contract_type"`
	TechnicalSkills     []string `json:"technical_skills"`
	SoftSkills          []string `json:"soft_skills"`
	ContactName         string   `json:"contact_name"`
	ContactEmail        string   `json:"contact_email"`
}

func (req proposalRequest) toProposal() (proposal.Proposal, error) {
	p := proposal.Proposal{
		Title:            req.Title,
		Type:             proposal.Type(req.Type),
		Description:      req.Description,
		CandidateProfile: req.CandidateProfile,
		Location:         req.Location,
		ContractType:     req.ContractType,
		TechnicalSkills:  req.TechnicalSkills,
		SoftSkills:       req.SoftSkills,
		ContactName:      req.ContactName,
		ContactEmail:     req.ContactEmail,
	}
	if req.ApplicationDeadline != "" {
		deadline, err := time.Parse(time.RFC3339, req.ApplicationDeadline)
		if err != nil {
			return proposal.Proposal{}, common.NewValidationError("invalid proposal", map[string]string{"application_deadline": "application_deadline must be RFC 3339"})
		}
		p.ApplicationDeadline = deadline
	}
	if req.CompanyID != "" {
		companyID, err := common.ParseUUID(req.CompanyID)
		if err != nil {
			return proposal.Proposal{}, common.NewValidationError("invalid proposal", map[string]string{"company_id": "invalid uuid"})
		}
		p.CompanyID = companyID
	}
	return p, nil
}

func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req proposalRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	p, err := req.toProposal()
	if err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.proposals.Create(r.Context(), actor, p)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ProposalHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	proposalID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req proposalRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	p, err := req.toProposal()
	if err != nil {
		response.Error(w, err)
		return
	}
	p.ID = proposalID
	updated, err := h.proposals.Update(r.Context(), actor, p)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ProposalHandler) Validate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.proposals.Validate)
}

func (h *ProposalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.proposals.Reject)
}

func (h *ProposalHandler) Inactivate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.proposals.Inactivate)
}

func (h *ProposalHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.proposals.Reactivate)
}

func (h *ProposalHandler) transition(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, actor app.Actor, id common.UUID) (*proposal.Proposal, error)) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	proposalID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := apply(r.Context(), actor, proposalID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ProposalHandler) Remove(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	proposalID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.proposals.Remove(r.Context(), actor, proposalID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ProposalHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	proposalID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.proposals.Get(r.Context(), actor, proposalID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var f proposal.Filter
	if value := r.URL.Query().Get("status"); value != "" {
		f.Status = proposal.Status(value)
	}
	if value := r.URL.Query().Get("company_id"); value != "" {
		companyID, err := common.ParseUUID(value)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid filter", map[string]string{"company_id": "invalid uuid"}))
			return
		}
		f.CompanyID = companyID
	}
	items, err := h.proposals.List(r.Context(), actor, f)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

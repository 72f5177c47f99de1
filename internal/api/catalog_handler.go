package api

import (
	"net/http"

	"github.com/livefit/livefit-api/internal/api/shared"
	"github.com/livefit/livefit-api/internal/service"
)

// CreditPackageHandler serves /api/credit-package.
type CreditPackageHandler struct {
	credits service.CreditService
}

// NewCreditPackageHandler creates a new CreditPackageHandler.
func NewCreditPackageHandler(credits service.CreditService) *CreditPackageHandler {
	if credits == nil {
		panic("credit service cannot be nil")
	}
	return &CreditPackageHandler{credits: credits}
}

// List handles GET /api/credit-package.
func (h *CreditPackageHandler) List(w http.ResponseWriter, r *http.Request) {
	packages, err := h.credits.ListPackages(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := make([]CreditPackageResponse, 0, len(packages))
	for _, p := range packages {
		resp = append(resp, CreditPackageResponse{
			ID:           p.ID,
			Name:         p.Name,
			CreditAmount: p.CreditAmount,
			Price:        p.Price,
		})
	}
	shared.RespondWithData(w, r, http.StatusOK, resp)
}

// Create handles POST /api/credit-package.
func (h *CreditPackageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCreditPackageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	pkg, err := h.credits.CreatePackage(r.Context(), req.Name, req.CreditAmount, req.Price)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, pkg)
}

// Purchase handles POST /api/credit-package/{creditPackageId}.
func (h *CreditPackageHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID, packageID, ok := handleUserIDAndPathUUID(w, r, "creditPackageId")
	if !ok {
		return
	}

	if _, err := h.credits.Purchase(r.Context(), userID, packageID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, nil)
}

// Delete handles DELETE /api/credit-package/{creditPackageId}.
func (h *CreditPackageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	packageID, ok := handlePathUUID(w, r, "creditPackageId")
	if !ok {
		return
	}

	if err := h.credits.DeletePackage(r.Context(), packageID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, nil)
}

// SkillHandler serves /api/coaches/skill.
type SkillHandler struct {
	skills service.SkillService
}

// NewSkillHandler creates a new SkillHandler.
func NewSkillHandler(skills service.SkillService) *SkillHandler {
	if skills == nil {
		panic("skill service cannot be nil")
	}
	return &SkillHandler{skills: skills}
}

// List handles GET /api/coaches/skill.
func (h *SkillHandler) List(w http.ResponseWriter, r *http.Request) {
	skills, err := h.skills.ListSkills(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := make([]SkillResponse, 0, len(skills))
	for _, s := range skills {
		resp = append(resp, SkillResponse{ID: s.ID, Name: s.Name})
	}
	shared.RespondWithData(w, r, http.StatusOK, resp)
}

// Create handles POST /api/coaches/skill.
func (h *SkillHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSkillRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	skill, err := h.skills.CreateSkill(r.Context(), req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, skill)
}

// Delete handles DELETE /api/coaches/skill/{skillId}.
func (h *SkillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	skillID, ok := handlePathUUID(w, r, "skillId")
	if !ok {
		return
	}

	if err := h.skills.DeleteSkill(r.Context(), skillID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, nil)
}

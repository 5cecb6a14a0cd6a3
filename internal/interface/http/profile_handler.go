package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devlinkhq/devlink/internal/application"
	"github.com/devlinkhq/devlink/internal/domain/entity"
	"github.com/devlinkhq/devlink/internal/interface/middleware"
	"github.com/devlinkhq/devlink/pkg/response"
	"github.com/devlinkhq/devlink/pkg/validation"
)

type ProfileHandler struct {
	Svc    *application.ProfileService
	Github *application.GithubService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, github *application.GithubService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Github: github, Logger: logger}
}

// upsertProfileRequest uses pointers so absent fields are distinguishable
// from empty ones and stay untouched on update.
type upsertProfileRequest struct {
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Status         *string `json:"status"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`
	Skills         *string `json:"skills"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	LinkedIn       *string `json:"linkedin"`
	YouTube        *string `json:"youtube"`
	Instagram      *string `json:"instagram"`
}

type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// GetMine GET /api/profile/me
func (h *ProfileHandler) GetMine(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.GetOwn(c.Request.Context(), uid)
	if err != nil {
		serviceError(c, h.Logger, err, "There is no profile for this user")
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// Upsert POST /api/profile
func (h *ProfileHandler) Upsert(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req upsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrors(c, validation.ToFieldErrors(err))
		return
	}

	p, err := h.Svc.Upsert(c.Request.Context(), uid, application.ProfilePatch{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		LinkedIn:       req.LinkedIn,
		YouTube:        req.YouTube,
		Instagram:      req.Instagram,
	})
	if err != nil {
		serviceError(c, h.Logger, err, "There is no profile for this user")
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// ListAll GET /api/profile
func (h *ProfileHandler) ListAll(c *gin.Context) {
	profiles, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		serviceError(c, h.Logger, err, "Profile not found")
		return
	}
	if profiles == nil {
		profiles = []*entity.Profile{}
	}
	response.JSON(c, http.StatusOK, profiles)
}

// GetByUser GET /api/profile/user/:userid
func (h *ProfileHandler) GetByUser(c *gin.Context) {
	p, err := h.Svc.GetByUser(c.Request.Context(), c.Param("userid"))
	if err != nil {
		serviceError(c, h.Logger, err, "Profile not found")
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// DeleteMine DELETE /api/profile cascades: posts, then profile, then user.
func (h *ProfileHandler) DeleteMine(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.DeleteOwn(c.Request.Context(), uid); err != nil {
		serviceError(c, h.Logger, err, "User not found")
		return
	}
	response.Msg(c, http.StatusOK, "User deleted")
}

// AddExperience PUT /api/profile/experience
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrors(c, validation.ToFieldErrors(err))
		return
	}

	p, err := h.Svc.AddExperience(c.Request.Context(), uid, entity.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		serviceError(c, h.Logger, err, "There is no profile for this user")
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// RemoveExperience DELETE /api/profile/experience/:expid
func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.RemoveExperience(c.Request.Context(), uid, c.Param("expid"))
	if err != nil {
		serviceError(c, h.Logger, err, "There is no profile for this user")
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// AddEducation PUT /api/profile/education
func (h *ProfileHandler) AddEducation(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrors(c, validation.ToFieldErrors(err))
		return
	}

	p, err := h.Svc.AddEducation(c.Request.Context(), uid, entity.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		serviceError(c, h.Logger, err, "There is no profile for this user")
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// RemoveEducation DELETE /api/profile/education/:eduid
func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.RemoveEducation(c.Request.Context(), uid, c.Param("eduid"))
	if err != nil {
		serviceError(c, h.Logger, err, "There is no profile for this user")
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// Search GET /api/profile/search?q=...
func (h *ProfileHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		serviceError(c, h.Logger, err, "Profile not found")
		return
	}
	response.JSON(c, http.StatusOK, hits)
}

// GithubRepos GET /api/profile/github/:username
func (h *ProfileHandler) GithubRepos(c *gin.Context) {
	body, err := h.Github.Repos(c.Request.Context(), c.Param("username"))
	if err != nil {
		serviceError(c, h.Logger, err, "No Github profile found")
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

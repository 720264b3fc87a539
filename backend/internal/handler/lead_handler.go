package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "packsite/backend/internal/domain/lead"
	response "packsite/backend/internal/infra/common"
	appLogger "packsite/backend/internal/infra/logger"
	leadsvc "packsite/backend/internal/service/lead"
)

// LeadHandler exposes the two public intake forms and the admin
// follow-up workflow, including the CSV export.
type LeadHandler struct {
	service *leadsvc.Service
	logger  *zap.SugaredLogger
}

// NewLeadHandler constructs the handler.
func NewLeadHandler(service *leadsvc.Service) *LeadHandler {
	return &LeadHandler{
		service: service,
		logger:  appLogger.S().With("component", "lead.handler"),
	}
}

// leadStatusRequest is the admin follow-up patch: each field is
// optional and applied independently.
type leadStatusRequest struct {
	IsRead      *bool   `json:"is_read"`
	IsContacted *bool   `json:"is_contacted"`
	Notes       *string `json:"notes"`
}

// SubmitContact handles the public contact form.
func (h *LeadHandler) SubmitContact(c *gin.Context) {
	var params leadsvc.ContactParams
	if err := c.ShouldBindJSON(&params); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	entry, err := h.service.SubmitContact(c.Request.Context(), params)
	if err != nil {
		h.failLead(c, err, "submit contact failed")
		return
	}
	response.Created(c, gin.H{"contact": entry}, nil)
}

// SubmitApplication handles the public agent application form.
func (h *LeadHandler) SubmitApplication(c *gin.Context) {
	var params leadsvc.ApplicationParams
	if err := c.ShouldBindJSON(&params); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	entry, err := h.service.SubmitAgentApplication(c.Request.Context(), params)
	if err != nil {
		h.failLead(c, err, "submit application failed")
		return
	}
	response.Created(c, gin.H{"application": entry}, nil)
}

// ListContacts returns contact submissions with pagination and the
// unread badge counter.
func (h *LeadHandler) ListContacts(c *gin.Context) {
	page, pageSize, offset := parsePagination(c)

	list, err := h.service.ListContacts(c.Request.Context(), offset, pageSize)
	if err != nil {
		h.logger.Errorw("list contacts failed", "error", err)
		response.Fail(c, http.StatusServiceUnavailable, response.ErrUnavailable, "list contacts failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"items":  list.Entries,
		"unread": list.Unread,
	}, pageMeta(page, pageSize, list.Total, len(list.Entries)))
}

// UpdateContact applies the follow-up patch to a contact submission.
func (h *LeadHandler) UpdateContact(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "invalid id", nil)
		return
	}

	var req leadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	var (
		entry *domain.Contact
		err   error
	)
	ctx := c.Request.Context()
	if req.IsRead != nil {
		if entry, err = h.service.MarkContactRead(ctx, id, *req.IsRead); err != nil {
			h.failLead(c, err, "update contact failed")
			return
		}
	}
	if req.IsContacted != nil {
		if entry, err = h.service.MarkContactContacted(ctx, id, *req.IsContacted); err != nil {
			h.failLead(c, err, "update contact failed")
			return
		}
	}
	if req.Notes != nil {
		if entry, err = h.service.SetContactNotes(ctx, id, *req.Notes); err != nil {
			h.failLead(c, err, "update contact failed")
			return
		}
	}
	if entry == nil {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "nothing to update", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"contact": entry}, nil)
}

// DeleteContact removes a contact submission.
func (h *LeadHandler) DeleteContact(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "invalid id", nil)
		return
	}

	if err := h.service.DeleteContact(c.Request.Context(), id); err != nil {
		h.failLead(c, err, "delete contact failed")
		return
	}
	response.NoContent(c)
}

// ExportContacts streams contact submissions as a CSV attachment.
// since accepts yyyy-MM-dd or RFC 3339 and is optional.
func (h *LeadHandler) ExportContacts(c *gin.Context) {
	since, ok := parseSince(c)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "invalid since parameter", nil)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=contacts-%s.csv", time.Now().Format(time.DateOnly)))

	if err := h.service.ExportContactsCSV(c.Request.Context(), c.Writer, since); err != nil {
		h.logger.Errorw("export contacts failed", "error", err)
	}
}

// ListApplications returns agent applications with pagination and the
// unread badge counter.
func (h *LeadHandler) ListApplications(c *gin.Context) {
	page, pageSize, offset := parsePagination(c)

	list, err := h.service.ListApplications(c.Request.Context(), offset, pageSize)
	if err != nil {
		h.logger.Errorw("list applications failed", "error", err)
		response.Fail(c, http.StatusServiceUnavailable, response.ErrUnavailable, "list applications failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"items":  list.Entries,
		"unread": list.Unread,
	}, pageMeta(page, pageSize, list.Total, len(list.Entries)))
}

// UpdateApplication applies the follow-up patch to an agent
// application.
func (h *LeadHandler) UpdateApplication(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "invalid id", nil)
		return
	}

	var req leadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	var (
		entry *domain.AgentApplication
		err   error
	)
	ctx := c.Request.Context()
	if req.IsRead != nil {
		if entry, err = h.service.MarkApplicationRead(ctx, id, *req.IsRead); err != nil {
			h.failLead(c, err, "update application failed")
			return
		}
	}
	if req.IsContacted != nil {
		if entry, err = h.service.MarkApplicationContacted(ctx, id, *req.IsContacted); err != nil {
			h.failLead(c, err, "update application failed")
			return
		}
	}
	if req.Notes != nil {
		if entry, err = h.service.SetApplicationNotes(ctx, id, *req.Notes); err != nil {
			h.failLead(c, err, "update application failed")
			return
		}
	}
	if entry == nil {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "nothing to update", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"application": entry}, nil)
}

// DeleteApplication removes an agent application.
func (h *LeadHandler) DeleteApplication(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "invalid id", nil)
		return
	}

	if err := h.service.DeleteApplication(c.Request.Context(), id); err != nil {
		h.failLead(c, err, "delete application failed")
		return
	}
	response.NoContent(c)
}

// ExportApplications streams agent applications as a CSV attachment.
func (h *LeadHandler) ExportApplications(c *gin.Context) {
	since, ok := parseSince(c)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "invalid since parameter", nil)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=agent-applications-%s.csv", time.Now().Format(time.DateOnly)))

	if err := h.service.ExportApplicationsCSV(c.Request.Context(), c.Writer, since); err != nil {
		h.logger.Errorw("export applications failed", "error", err)
	}
}

// failLead maps the lead service sentinels onto response codes.
func (h *LeadHandler) failLead(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, leadsvc.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound, err.Error(), nil)
	case errors.Is(err, leadsvc.ErrValidation):
		response.Fail(c, http.StatusBadRequest, response.ErrValidation, err.Error(), nil)
	default:
		h.logger.Errorw(fallback, "error", err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, fallback, nil)
	}
}

func parseSince(c *gin.Context) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query("since"))
	if raw == "" {
		return time.Time{}, true
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

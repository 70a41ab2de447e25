package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/michaello/backoffice/internal/api/dto"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/logger"
	"github.com/michaello/backoffice/internal/service"
	"github.com/michaello/backoffice/internal/types"
)

type CertificateHandler struct {
	service service.CertificateService
	log     *logger.Logger
}

func NewCertificateHandler(service service.CertificateService, log *logger.Logger) *CertificateHandler {
	return &CertificateHandler{
		service: service,
		log:     log,
	}
}

// @Summary Issue a certificate
// @Description Issue an authenticity certificate for an item, optionally linked to a paid invoice
// @Tags Certificates
// @Accept json
// @Produce json
// @Param certificate body dto.CreateCertificateRequest true "Certificate"
// @Success 201 {object} dto.CertificateResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /certificates [post]
func (h *CertificateHandler) CreateCertificate(c *gin.Context) {
	var req dto.CreateCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateCertificate(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a certificate
// @Description Get a certificate by ID
// @Tags Certificates
// @Accept json
// @Produce json
// @Param id path string true "Certificate ID"
// @Success 200 {object} dto.CertificateResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /certificates/{id} [get]
func (h *CertificateHandler) GetCertificate(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetCertificate(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List certificates
// @Description List certificates with optional item and invoice filters
// @Tags Certificates
// @Accept json
// @Produce json
// @Param filter query types.CertificateFilter false "Filter"
// @Success 200 {object} dto.ListCertificatesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /certificates [get]
func (h *CertificateHandler) ListCertificates(c *gin.Context) {
	var filter types.CertificateFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListCertificates(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Download a certificate PDF
// @Description Render the certificate as a PDF document
// @Tags Certificates
// @Accept json
// @Produce application/pdf
// @Param id path string true "Certificate ID"
// @Success 200 {file} binary
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /certificates/{id}/pdf [get]
func (h *CertificateHandler) GetCertificatePDF(c *gin.Context) {
	id := c.Param("id")

	pdf, err := h.service.RenderCertificatePDF(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=certificate-"+id+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// @Summary Delete a certificate
// @Description Delete a certificate
// @Tags Certificates
// @Accept json
// @Produce json
// @Param id path string true "Certificate ID"
// @Success 204 "No Content"
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /certificates/{id} [delete]
func (h *CertificateHandler) DeleteCertificate(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteCertificate(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bhai/internal/auth"
	"bhai/internal/http/middleware"
	"bhai/internal/records"
)

type RecordsHandler struct {
	Records *records.Service
}

func (h *RecordsHandler) Patients(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"patients": h.Records.Patients(c.Request.Context())})
}

func (h *RecordsHandler) PatientDetail(c *gin.Context) {
	detail, err := h.Records.PatientDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "patient not found"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

type diagnosisReq struct {
	Condition string `json:"condition"`
	Notes     string `json:"notes"`
}

func (h *RecordsHandler) AddDiagnosis(c *gin.Context) {
	var req diagnosisReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body", "error": err.Error()})
		return
	}
	d, err := h.Records.AddDiagnosis(c.Request.Context(), middleware.MustUserID(c), c.Param("id"), req.Condition, req.Notes)
	if err != nil {
		writeRecordsError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"diagnosis": d})
}

type prescriptionReq struct {
	Medication   string `json:"medication"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions"`
}

func (h *RecordsHandler) AddPrescription(c *gin.Context) {
	var req prescriptionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body", "error": err.Error()})
		return
	}
	p, err := h.Records.AddPrescription(c.Request.Context(), middleware.MustUserID(c), c.Param("id"), req.Medication, req.Dosage, req.Instructions)
	if err != nil {
		writeRecordsError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"prescription": p})
}

func writeRecordsError(c *gin.Context, err error) {
	var verr *auth.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "request failed"})
}

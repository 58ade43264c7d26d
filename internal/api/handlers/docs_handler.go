package handlers

import (
	"net/http"

	"employee-records/internal/api/docs"

	"github.com/gin-gonic/gin"
)

// DocsHandler serves the OpenAPI description
type DocsHandler struct {
	document *docs.Document
}

func NewDocsHandler(document *docs.Document) *DocsHandler {
	return &DocsHandler{document: document}
}

// JSON handles GET /v3/api-docs
func (h *DocsHandler) JSON(c *gin.Context) {
	body, err := h.document.JSON()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, gin.MIMEJSON, body)
}

// YAML handles GET /v3/api-docs.yaml
func (h *DocsHandler) YAML(c *gin.Context) {
	body, err := h.document.YAML()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/yaml", body)
}

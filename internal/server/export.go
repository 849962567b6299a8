package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lexflow/lexfin/internal/export"
)

func (s *Server) ListExportTables(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": []string{
		export.TableClients,
		export.TableProcesses,
		export.TablePhases,
		export.TablePayments,
	}})
}

// ExportTable streams one table dump as a CSV attachment.
func (s *Server) ExportTable(c *gin.Context) {
	file, err := s.exportSvc.ExportTable(c.Request.Context(), strings.TrimSpace(c.Param("table")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	c.Data(http.StatusOK, "text/csv", file.Data)
}

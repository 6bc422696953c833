package handler

import (
	"net/http"

	"github.com/KAKADIVA/testePFI/internal/models"
	"github.com/KAKADIVA/testePFI/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListProfessionals devolve o diretório de profissionais cadastrados,
// ordenado por nome. Leitura aberta.
func ListProfessionals(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		err := db.Where("role = ?", models.RoleProfessional).
			Order("nome ASC").
			Find(&users).Error
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao buscar profissionais.")
			return
		}

		out := make([]util.Response, 0, len(users))
		for _, u := range users {
			out = append(out, util.Response{
				"id":   u.ID,
				"nome": u.Nome,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

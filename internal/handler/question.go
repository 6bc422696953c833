package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/KAKADIVA/testePFI/internal/middleware"
	"github.com/KAKADIVA/testePFI/internal/models"
	"github.com/KAKADIVA/testePFI/internal/policy"
	"github.com/KAKADIVA/testePFI/internal/upload"
	"github.com/KAKADIVA/testePFI/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// QuestionHandler cuida das perguntas do fórum.
type QuestionHandler struct {
	DB     *gorm.DB
	Intake *upload.Intake
}

// NewQuestionHandler constrói o handler de perguntas.
func NewQuestionHandler(db *gorm.DB, intake *upload.Intake) *QuestionHandler {
	return &QuestionHandler{DB: db, Intake: intake}
}

// questionRow é a linha devolvida pelas listagens, com autor embutido.
type questionRow struct {
	ID          uint        `json:"id"`
	Titulo      string      `json:"titulo"`
	Descricao   string      `json:"descricao"`
	UsuarioID   uint        `json:"usuario_id"`
	NomeArquivo string      `json:"nome_arquivo"`
	Autor       string      `json:"autor"`
	Role        models.Role `json:"-"`
}

func rowResponse(r questionRow) util.Response {
	return util.Response{
		"id":           r.ID,
		"titulo":       r.Titulo,
		"descricao":    r.Descricao,
		"usuario_id":   r.UsuarioID,
		"nome_arquivo": r.NomeArquivo,
		"autor":        r.Autor,
		"profissional": r.Role == models.RoleProfessional,
	}
}

// List devolve todas as perguntas, mais recentes primeiro. Leitura aberta.
func (h *QuestionHandler) List(c *gin.Context) {
	var rows []questionRow
	err := h.DB.Table("questions").
		Select("questions.id, questions.titulo, questions.descricao, questions.user_id AS usuario_id, questions.nome_arquivo, users.nome AS autor, users.role AS role").
		Joins("LEFT JOIN users ON users.id = questions.user_id").
		Order("questions.id DESC").
		Scan(&rows).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao buscar perguntas.")
		return
	}

	out := make([]util.Response, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

type createQuestionReq struct {
	Titulo    string `json:"titulo" form:"titulo"`
	Descricao string `json:"descricao" form:"descricao"`
}

// Create cria uma pergunta, aceitando JSON puro ou multipart com um único
// anexo opcional no campo "anexo".
func (h *QuestionHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if d := policy.Authorize(user, policy.ActionCreateQuestion, 0); !d.Allowed {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Usuário não autenticado")
		return
	}

	var req createQuestionReq
	var nomeArquivo string

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		req.Titulo = c.PostForm("titulo")
		req.Descricao = c.PostForm("descricao")

		if fh, err := c.FormFile("anexo"); err == nil && fh != nil {
			att, err := h.Intake.Ingest(fh)
			if err != nil {
				switch {
				case errors.Is(err, upload.ErrTooLarge):
					util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Arquivo muito grande. Máximo 5MB.")
				case errors.Is(err, upload.ErrUnsupportedType):
					util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Apenas imagens, PDFs e documentos são permitidos")
				default:
					util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor ao criar pergunta")
				}
				return
			}
			nomeArquivo = att.Filename
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Título e descrição são obrigatórios")
			return
		}
	}

	req.Titulo = strings.TrimSpace(req.Titulo)
	req.Descricao = strings.TrimSpace(req.Descricao)
	if req.Titulo == "" || req.Descricao == "" {
		// anexo já salvo não deve ficar órfão
		_ = h.Intake.Remove(nomeArquivo)
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Título e descrição são obrigatórios")
		return
	}

	q := models.Question{
		Titulo:      req.Titulo,
		Descricao:   req.Descricao,
		UserID:      user.ID,
		NomeArquivo: nomeArquivo,
	}
	if err := h.DB.Create(&q).Error; err != nil {
		_ = h.Intake.Remove(nomeArquivo)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor ao criar pergunta")
		return
	}

	util.JSON(c, http.StatusCreated, util.Response{
		"mensagem": "Pergunta criada com sucesso!",
		"pergunta": rowResponse(questionRow{
			ID:          q.ID,
			Titulo:      q.Titulo,
			Descricao:   q.Descricao,
			UsuarioID:   user.ID,
			NomeArquivo: q.NomeArquivo,
			Autor:       user.Nome,
			Role:        user.Role,
		}),
	})
}

// Delete remove uma pergunta do autor junto com todas as respostas dela,
// numa única transação. Pergunta de outro autor e pergunta inexistente
// respondem o mesmo 404.
func (h *QuestionHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Usuário não autenticado")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Pergunta não encontrada ou você não tem permissão para excluí-la")
		return
	}

	var q models.Question
	if err := h.DB.First(&q, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Pergunta não encontrada ou você não tem permissão para excluí-la")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		}
		return
	}

	if d := policy.Authorize(user, policy.ActionDeleteQuestion, q.UserID); !d.Allowed {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Pergunta não encontrada ou você não tem permissão para excluí-la")
		return
	}

	// respostas e pergunta caem juntas ou não caem
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Answer{}, "question_id = ?", q.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Question{}, q.ID).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	// remoção do arquivo é melhor esforço, depois do commit
	_ = h.Intake.Remove(q.NomeArquivo)

	util.JSON(c, http.StatusOK, util.Response{"mensagem": "Pergunta excluída com sucesso!"})
}

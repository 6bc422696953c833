package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/KAKADIVA/testePFI/internal/middleware"
	"github.com/KAKADIVA/testePFI/internal/models"
	"github.com/KAKADIVA/testePFI/internal/policy"
	"github.com/KAKADIVA/testePFI/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AnswerHandler cuida das respostas, restritas a profissionais.
type AnswerHandler struct {
	DB *gorm.DB
}

// NewAnswerHandler constrói o handler de respostas.
func NewAnswerHandler(db *gorm.DB) *AnswerHandler {
	return &AnswerHandler{DB: db}
}

type answerRow struct {
	ID         uint        `json:"id"`
	Descricao  string      `json:"descricao"`
	PerguntaID uint        `json:"pergunta_id"`
	UsuarioID  uint        `json:"usuario_id"`
	Autor      string      `json:"autor"`
	Role       models.Role `json:"-"`
}

func answerResponse(r answerRow) util.Response {
	return util.Response{
		"id":           r.ID,
		"descricao":    r.Descricao,
		"pergunta_id":  r.PerguntaID,
		"usuario_id":   r.UsuarioID,
		"autor":        r.Autor,
		"profissional": r.Role == models.RoleProfessional,
	}
}

// List devolve as respostas de uma pergunta, mais antigas primeiro.
// Leitura aberta; pergunta sem respostas devolve lista vazia.
func (h *AnswerHandler) List(c *gin.Context) {
	perguntaID, err := strconv.ParseUint(c.Param("perguntaId"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Pergunta inválida.")
		return
	}

	var rows []answerRow
	err = h.DB.Table("answers").
		Select("answers.id, answers.descricao, answers.question_id AS pergunta_id, answers.user_id AS usuario_id, users.nome AS autor, users.role AS role").
		Joins("LEFT JOIN users ON users.id = answers.user_id").
		Where("answers.question_id = ?", uint(perguntaID)).
		Order("answers.id ASC").
		Scan(&rows).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao buscar respostas.")
		return
	}

	out := make([]util.Response, 0, len(rows))
	for _, r := range rows {
		out = append(out, answerResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

type createAnswerReq struct {
	Descricao  string `json:"descricao"`
	PerguntaID uint   `json:"pergunta_id"`
}

// Create registra a resposta de um profissional a uma pergunta existente.
func (h *AnswerHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	d := policy.Authorize(user, policy.ActionCreateAnswer, 0)
	if !d.Allowed {
		if d.Reason == policy.ReasonProfessionalOnly {
			util.Error(c, http.StatusForbidden, util.CodeForbidden, "Apenas profissionais podem responder perguntas.")
		} else {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Usuário não autenticado.")
		}
		return
	}

	var req createAnswerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Campos obrigatórios faltando.")
		return
	}
	req.Descricao = strings.TrimSpace(req.Descricao)
	if req.Descricao == "" || req.PerguntaID == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Campos obrigatórios faltando.")
		return
	}

	// resposta nunca pode apontar para pergunta inexistente
	var q models.Question
	if err := h.DB.First(&q, req.PerguntaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Pergunta não encontrada.")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao cadastrar resposta.")
		}
		return
	}

	a := models.Answer{
		Descricao:  req.Descricao,
		QuestionID: q.ID,
		UserID:     user.ID,
	}
	if err := h.DB.Create(&a).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao cadastrar resposta.")
		return
	}

	util.JSON(c, http.StatusCreated, util.Response{
		"mensagem": "Resposta cadastrada com sucesso!",
		"resposta": answerResponse(answerRow{
			ID:         a.ID,
			Descricao:  a.Descricao,
			PerguntaID: a.QuestionID,
			UsuarioID:  user.ID,
			Autor:      user.Nome,
			Role:       user.Role,
		}),
	})
}

// Delete remove uma resposta do próprio autor. Resposta alheia e resposta
// inexistente respondem o mesmo 404.
func (h *AnswerHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Usuário não autenticado")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Resposta não encontrada ou você não tem permissão para excluí-la")
		return
	}

	var a models.Answer
	if err := h.DB.First(&a, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Resposta não encontrada ou você não tem permissão para excluí-la")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		}
		return
	}

	if d := policy.Authorize(user, policy.ActionDeleteAnswer, a.UserID); !d.Allowed {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Resposta não encontrada ou você não tem permissão para excluí-la")
		return
	}

	if err := h.DB.Delete(&models.Answer{}, a.ID).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.JSON(c, http.StatusOK, util.Response{"mensagem": "Resposta excluída com sucesso!"})
}

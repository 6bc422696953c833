package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/KAKADIVA/testePFI/internal/middleware"
	"github.com/KAKADIVA/testePFI/internal/models"
	"github.com/KAKADIVA/testePFI/internal/session"
	"github.com/KAKADIVA/testePFI/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler cuida de cadastro, login, sessão e troca de senha.
type AuthHandler struct {
	DB         *gorm.DB
	Sessions   *session.Manager
	CookieName string
	BcryptCost int
}

// NewAuthHandler constrói o handler de autenticação.
func NewAuthHandler(db *gorm.DB, sessions *session.Manager, cookieName string, bcryptCost int) *AuthHandler {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthHandler{
		DB:         db,
		Sessions:   sessions,
		CookieName: cookieName,
		BcryptCost: bcryptCost,
	}
}

// setSessionCookie grava o cookie HttpOnly com a mesma vida útil da sessão.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(h.CookieName, token, int(h.Sessions.TTL().Seconds()), "/", "", false, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(h.CookieName, "", -1, "/", "", false, true)
}

// ---------- cadastro ----------

type registerReq struct {
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	Senha        string `json:"senha"`
	Profissional bool   `json:"profissional"`
}

// Register cadastra o usuário e já abre uma sessão para ele.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Preencha todos os campos!")
		return
	}

	req.Nome = strings.TrimSpace(req.Nome)
	req.Email = strings.TrimSpace(req.Email)

	if req.Nome == "" || req.Email == "" || req.Senha == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Preencha todos os campos!")
		return
	}

	// e-mail único, comparação exata
	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("email = ?", req.Email).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao cadastrar usuário.")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusConflict, util.CodeConflict, "E-mail já cadastrado!")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao cadastrar usuário.")
		return
	}

	user := models.User{
		Nome:         req.Nome,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleFor(req.Profissional),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao cadastrar usuário.")
		return
	}

	s, err := h.Sessions.Create(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao cadastrar usuário.")
		return
	}
	h.setSessionCookie(c, s.Token)

	util.JSON(c, http.StatusCreated, util.Response{
		"mensagem":     "Usuário cadastrado com sucesso!",
		"id":           user.ID,
		"nome":         user.Nome,
		"profissional": user.Professional(),
	})
}

// ---------- login ----------

type loginReq struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// Login autentica por e-mail e senha. Usuário inexistente e senha errada
// produzem exatamente a mesma resposta.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Informe e-mail e senha!")
		return
	}
	if req.Email == "" || req.Senha == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Informe e-mail e senha!")
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "E-mail ou senha inválidos!")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro no servidor ao efetuar login.")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Senha)); err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "E-mail ou senha inválidos!")
		return
	}

	s, err := h.Sessions.Create(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro no servidor ao efetuar login.")
		return
	}
	h.setSessionCookie(c, s.Token)

	util.JSON(c, http.StatusOK, util.Response{
		"id":           user.ID,
		"nome":         user.Nome,
		"profissional": user.Professional(),
	})
}

// ---------- sessão ----------

// Sessao devolve o resumo da identidade logada.
func (h *AuthHandler) Sessao(c *gin.Context) {
	token, _ := c.Cookie(h.CookieName)
	user, err := h.Sessions.Resolve(token)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autenticado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao validar sessão")
		}
		return
	}

	util.JSON(c, http.StatusOK, util.Response{
		"id":           user.ID,
		"nome":         user.Nome,
		"profissional": user.Professional(),
	})
}

// Logout destrói a sessão; destruir uma sessão inexistente não é erro.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.CookieName)
	if err := h.Sessions.Destroy(token); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao sair.")
		return
	}
	h.clearSessionCookie(c)
	util.JSON(c, http.StatusOK, util.Response{"mensagem": "Logout realizado com sucesso!"})
}

// ---------- troca de senha ----------

type changePasswordReq struct {
	SenhaAtual string `json:"senhaAtual"`
	NovaSenha  string `json:"novaSenha"`
}

// ChangePassword troca a senha do usuário logado após conferir a atual.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Usuário não autenticado.")
		return
	}

	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Preencha todos os campos!")
		return
	}
	if req.SenhaAtual == "" || req.NovaSenha == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Preencha todos os campos!")
		return
	}
	if len(req.NovaSenha) < 6 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "A nova senha deve ter pelo menos 6 caracteres.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.SenhaAtual)); err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Senha atual incorreta.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NovaSenha), h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao alterar senha.")
		return
	}
	if err := h.DB.Model(user).Update("password_hash", string(hash)).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao alterar senha.")
		return
	}

	util.JSON(c, http.StatusOK, util.Response{"mensagem": "Senha alterada com sucesso!"})
}

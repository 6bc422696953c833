package util

import "github.com/gin-gonic/gin"

// Response é o corpo JSON genérico devolvido pelos handlers.
type Response map[string]interface{}

// códigos de negócio, espelham a taxonomia de erros do núcleo
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeAuth         = 40101
	CodeForbidden    = 40301
	CodeNotFound     = 40401
	CodeConflict     = 40901
	CodeServerErr    = 50001
)

// JSON devolve um corpo de sucesso com o status informado.
func JSON(c *gin.Context, httpStatus int, data Response) {
	c.JSON(httpStatus, data)
}

// Error devolve o corpo de erro unificado {"mensagem": ...}.
func Error(c *gin.Context, httpStatus int, code int, mensagem string) {
	c.JSON(httpStatus, gin.H{
		"code":     code,
		"mensagem": mensagem,
	})
}

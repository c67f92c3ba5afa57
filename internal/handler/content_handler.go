package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/response"
)

// ContentService is the part of *service.ContentService the handler uses.
type ContentService interface {
	CreateQuiz(ctx context.Context, schoolID int, req *model.CreateQuizRequest) (int, error)
	AssignTask(ctx context.Context, schoolID int, req *model.CreateTaskRequest) (int, error)
	SendMessage(ctx context.Context, schoolID int, req *model.SendMessageRequest) (int, model.MessageStatus, error)
}

// ContentHandler creates quizzes, tasks and messages.
type ContentHandler struct {
	contentService ContentService
	log            zerolog.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(contentService ContentService, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		log:            log.With().Str("component", "content_handler").Logger(),
	}
}

// CreateQuiz godoc
// POST /quiz/criar
// Creates a quiz with its questions and optional individual recipients.
func (h *ContentHandler) CreateQuiz(c *gin.Context) {
	id, ok := schoolID(c)
	if !ok {
		return
	}

	var req model.CreateQuizRequest
	if !bindJSON(c, &req) {
		return
	}

	quizID, err := h.contentService.CreateQuiz(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, model.ContentCreated{Message: "Quiz criado com sucesso", ID: quizID})
}

// AssignTask godoc
// POST /tarefa/atribuir
// Creates a task and its optional individual recipients.
func (h *ContentHandler) AssignTask(c *gin.Context) {
	id, ok := schoolID(c)
	if !ok {
		return
	}

	var req model.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	taskID, err := h.contentService.AssignTask(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, model.ContentCreated{Message: "Tarefa atribuída com sucesso", ID: taskID})
}

// SendMessage godoc
// POST /mensagem/enviar
// Stores a message, scheduled when its send time is in the future.
func (h *ContentHandler) SendMessage(c *gin.Context) {
	id, ok := schoolID(c)
	if !ok {
		return
	}

	var req model.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	messageID, status, err := h.contentService.SendMessage(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, h.log, err)
		return
	}

	msg := "Mensagem enviada com sucesso"
	if status == model.MessageStatusScheduled {
		msg = "Mensagem agendada com sucesso"
	}
	response.Success(c, http.StatusOK, gin.H{"message": msg, "id": messageID, "status": status})
}

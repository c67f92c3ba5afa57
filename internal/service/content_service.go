package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/database"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/repository"
)

// Defaults applied to optional content fields.
const (
	defaultDifficulty        = "medio"
	defaultPointsPerQuestion = 10
	defaultMinimumScore      = 60
	defaultAttemptsAllowed   = 1
	defaultRewardPoints      = 10
	defaultMaxResubmits      = 0
	defaultQuestionType      = "multipla_escolha"
	defaultPriority          = "normal"
	defaultCategory          = "geral"
)

// ContentService creates quizzes, tasks and messages together with their
// child rows. Each creation runs in one transaction.
type ContentService struct {
	db          database.TxBeginner
	quizRepo    *repository.QuizRepository
	taskRepo    *repository.TaskRepository
	messageRepo *repository.MessageRepository
	log         zerolog.Logger
	now         func() time.Time
}

// NewContentService creates a new ContentService.
func NewContentService(
	db database.TxBeginner,
	quizRepo *repository.QuizRepository,
	taskRepo *repository.TaskRepository,
	messageRepo *repository.MessageRepository,
	log zerolog.Logger,
) *ContentService {
	return &ContentService{
		db:          db,
		quizRepo:    quizRepo,
		taskRepo:    taskRepo,
		messageRepo: messageRepo,
		log:         log.With().Str("component", "content_service").Logger(),
		now:         time.Now,
	}
}

type requirement struct {
	field  string
	absent bool
}

// missing returns the fields of the absent requirements, in order.
func missing(reqs ...requirement) []string {
	var names []string
	for _, r := range reqs {
		if r.absent {
			names = append(names, r.field)
		}
	}
	return names
}

func validRecipientType(t model.RecipientType) bool {
	switch t {
	case model.RecipientClass, model.RecipientIndividual, model.RecipientAll:
		return true
	}
	return false
}

// individualRecipients returns the distinct student IDs to fan out to, in
// request order, or nil when the content is not addressed to individual
// students. Repeated IDs would otherwise hit the recipient primary key.
func individualRecipients(t model.RecipientType, ids []int) []int {
	if t != model.RecipientIndividual {
		return nil
	}
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func intOr(p *int, def int) *int {
	if p != nil {
		return p
	}
	return &def
}

func boolOr(p *bool, def bool) *bool {
	if p != nil {
		return p
	}
	return &def
}

func validateQuiz(req *model.CreateQuizRequest) error {
	if names := missing(
		requirement{"titulo", strings.TrimSpace(req.Title) == ""},
		requirement{"materia", strings.TrimSpace(req.Subject) == ""},
		requirement{"serie_id", req.ClassID <= 0},
		requirement{"perguntas", len(req.Questions) == 0},
	); len(names) > 0 {
		return MissingFieldsError(names)
	}
	if req.RecipientType != "" && !validRecipientType(req.RecipientType) {
		return NewValidationError("Tipo de destinatário inválido: %s", req.RecipientType)
	}
	for i, q := range req.Questions {
		if strings.TrimSpace(q.Statement) == "" {
			return NewValidationError("A pergunta %d precisa de um enunciado", i+1)
		}
	}
	if !req.StartsAt.IsZero() && !req.EndsAt.IsZero() && req.EndsAt.Before(req.StartsAt.Time) {
		return NewValidationError("A data de fim deve ser posterior à data de início")
	}
	return nil
}

// CreateQuiz inserts the quiz, its ordered questions and its individual
// recipients. Any failure rolls all of them back.
func (s *ContentService) CreateQuiz(ctx context.Context, schoolID int, req *model.CreateQuizRequest) (int, error) {
	if err := validateQuiz(req); err != nil {
		return 0, err
	}
	if req.RecipientType == "" {
		req.RecipientType = model.RecipientClass
	}
	if req.Difficulty == "" {
		req.Difficulty = defaultDifficulty
	}
	req.PointsPerQuestion = intOr(req.PointsPerQuestion, defaultPointsPerQuestion)
	req.MinimumScore = intOr(req.MinimumScore, defaultMinimumScore)
	req.AttemptsAllowed = intOr(req.AttemptsAllowed, defaultAttemptsAllowed)
	req.ShowResult = boolOr(req.ShowResult, true)

	var quizID int
	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		quizzes := s.quizRepo.WithTx(tx)

		id, err := quizzes.Create(ctx, schoolID, req, model.ContentStatusActive)
		if err != nil {
			return fmt.Errorf("insert quiz: %w", err)
		}

		for i, q := range req.Questions {
			if q.Type == "" {
				q.Type = defaultQuestionType
			}
			if err := quizzes.AddQuestion(ctx, id, i+1, q); err != nil {
				return fmt.Errorf("insert question %d: %w", i+1, err)
			}
		}

		for _, studentID := range individualRecipients(req.RecipientType, req.SelectedStudents) {
			if err := quizzes.AddRecipient(ctx, id, studentID); err != nil {
				return fmt.Errorf("assign quiz to student %d: %w", studentID, err)
			}
		}

		quizID = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info().
		Int("school_id", schoolID).
		Int("quiz_id", quizID).
		Int("questions", len(req.Questions)).
		Msg("Quiz created")
	return quizID, nil
}

func validateTask(req *model.CreateTaskRequest) error {
	if names := missing(
		requirement{"titulo", strings.TrimSpace(req.Title) == ""},
		requirement{"materia", strings.TrimSpace(req.Subject) == ""},
		requirement{"serie_id", req.ClassID <= 0},
		requirement{"data_entrega", req.DueAt.IsZero()},
	); len(names) > 0 {
		return MissingFieldsError(names)
	}
	if req.RecipientType != "" && !validRecipientType(req.RecipientType) {
		return NewValidationError("Tipo de destinatário inválido: %s", req.RecipientType)
	}
	if req.RewardPoints != nil && *req.RewardPoints < 0 {
		return NewValidationError("Os pontos de recompensa não podem ser negativos")
	}
	return nil
}

// AssignTask inserts a task and its individual recipients in one transaction.
func (s *ContentService) AssignTask(ctx context.Context, schoolID int, req *model.CreateTaskRequest) (int, error) {
	if err := validateTask(req); err != nil {
		return 0, err
	}
	if req.RecipientType == "" {
		req.RecipientType = model.RecipientClass
	}
	req.RewardPoints = intOr(req.RewardPoints, defaultRewardPoints)
	req.AllowResubmit = boolOr(req.AllowResubmit, false)
	req.MaxResubmits = intOr(req.MaxResubmits, defaultMaxResubmits)

	var taskID int
	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		tasks := s.taskRepo.WithTx(tx)

		id, err := tasks.Create(ctx, schoolID, req, model.ContentStatusActive)
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}

		for _, studentID := range individualRecipients(req.RecipientType, req.SelectedStudents) {
			if err := tasks.AddRecipient(ctx, id, studentID); err != nil {
				return fmt.Errorf("assign task to student %d: %w", studentID, err)
			}
		}

		taskID = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info().Int("school_id", schoolID).Int("task_id", taskID).Msg("Task assigned")
	return taskID, nil
}

func validateMessage(req *model.SendMessageRequest) error {
	if names := missing(
		requirement{"assunto", strings.TrimSpace(req.Subject) == ""},
		requirement{"conteudo", strings.TrimSpace(req.Body) == ""},
		requirement{"tipo_destinatario", req.RecipientType == ""},
	); len(names) > 0 {
		return MissingFieldsError(names)
	}
	if !validRecipientType(req.RecipientType) {
		return NewValidationError("Tipo de destinatário inválido: %s", req.RecipientType)
	}
	if req.RecipientType == model.RecipientClass && (req.ClassID == nil || *req.ClassID <= 0) {
		return MissingFieldsError([]string{"serie_id"})
	}
	return nil
}

// messageStatus is "agendada" for a send time in the future, else "enviada".
func messageStatus(sendAt, now time.Time) model.MessageStatus {
	if sendAt.After(now) {
		return model.MessageStatusScheduled
	}
	return model.MessageStatusSent
}

// SendMessage stores a message and its individual recipients. Delivery is
// out of scope; a future send time only marks the message as scheduled.
func (s *ContentService) SendMessage(ctx context.Context, schoolID int, req *model.SendMessageRequest) (int, model.MessageStatus, error) {
	if err := validateMessage(req); err != nil {
		return 0, "", err
	}
	if req.Priority == "" {
		req.Priority = defaultPriority
	}
	if req.Category == "" {
		req.Category = defaultCategory
	}
	if req.RecipientType == model.RecipientAll {
		req.ClassID = nil
	}

	now := s.now()
	sendAt := now
	if !req.SendAt.IsZero() {
		sendAt = req.SendAt.Time
	}
	status := messageStatus(sendAt, now)

	var messageID int
	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		messages := s.messageRepo.WithTx(tx)

		id, err := messages.Create(ctx, schoolID, req, sendAt, status)
		if err != nil {
			return fmt.Errorf("insert message: %w", err)
		}

		for _, studentID := range individualRecipients(req.RecipientType, req.SelectedStudents) {
			if err := messages.AddRecipient(ctx, id, studentID); err != nil {
				return fmt.Errorf("address message to student %d: %w", studentID, err)
			}
		}

		messageID = id
		return nil
	})
	if err != nil {
		return 0, "", err
	}

	s.log.Info().
		Int("school_id", schoolID).
		Int("message_id", messageID).
		Str("status", string(status)).
		Msg("Message stored")
	return messageID, status, nil
}

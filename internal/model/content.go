package model

import "encoding/json"

// RecipientType selects who receives a quiz, task or message.
type RecipientType string

const (
	RecipientClass      RecipientType = "turma"
	RecipientIndividual RecipientType = "individual"
	RecipientAll        RecipientType = "todos"
)

// ContentStatus is the lifecycle state stored on quizzes and tasks.
type ContentStatus string

const (
	ContentStatusActive  ContentStatus = "ativo"
	ContentStatusPending ContentStatus = "pendente"
)

// QuizQuestion is one ordered question of a quiz.
type QuizQuestion struct {
	Statement     string          `json:"enunciado"`
	Type          string          `json:"tipo"`
	Options       json.RawMessage `json:"opcoes"`
	CorrectAnswer string          `json:"resposta_correta"`
	Explanation   string          `json:"explicacao"`
}

// CreateQuizRequest is the payload for POST /quiz/criar.
type CreateQuizRequest struct {
	Title             string         `json:"titulo"`
	Description       string         `json:"descricao"`
	Subject           string         `json:"materia"`
	ClassID           int            `json:"serie_id"`
	Difficulty        string         `json:"dificuldade"`
	TimeLimit         *int           `json:"tempo_limite"`
	PointsPerQuestion *int           `json:"pontos_por_questao"`
	MinimumScore      *int           `json:"pontuacao_minima"`
	AttemptsAllowed   *int           `json:"tentativas_permitidas"`
	ShowResult        *bool          `json:"mostrar_resultado"`
	StartsAt          Timestamp      `json:"data_inicio"`
	EndsAt            Timestamp      `json:"data_fim"`
	RecipientType     RecipientType  `json:"tipo_destinatario"`
	SelectedStudents  []int          `json:"alunos_selecionados"`
	Questions         []QuizQuestion `json:"perguntas"`
}

// CreateTaskRequest is the payload for POST /tarefa/atribuir.
type CreateTaskRequest struct {
	Title            string        `json:"titulo"`
	Description      string        `json:"descricao"`
	Subject          string        `json:"materia"`
	ClassID          int           `json:"serie_id"`
	RewardPoints     *int          `json:"pontos_recompensa"`
	DueAt            Timestamp     `json:"data_entrega"`
	AllowResubmit    *bool         `json:"permitir_reenvio"`
	MaxResubmits     *int          `json:"max_reenvios"`
	RecipientType    RecipientType `json:"tipo_destinatario"`
	SelectedStudents []int         `json:"alunos_selecionados"`
}

// MessageStatus is the delivery state of a message.
type MessageStatus string

const (
	MessageStatusSent      MessageStatus = "enviada"
	MessageStatusScheduled MessageStatus = "agendada"
)

// SendMessageRequest is the payload for POST /mensagem/enviar.
type SendMessageRequest struct {
	Subject          string        `json:"assunto"`
	Body             string        `json:"conteudo"`
	Priority         string        `json:"prioridade"`
	Category         string        `json:"categoria"`
	SendAt           Timestamp     `json:"data_envio"`
	RecipientType    RecipientType `json:"tipo_destinatario"`
	ClassID          *int          `json:"serie_id"`
	SelectedStudents []int         `json:"alunos_selecionados"`
}

// ContentCreated is the response body after creating a quiz, task or message.
type ContentCreated struct {
	Message string `json:"message"`
	ID      int    `json:"id"`
}

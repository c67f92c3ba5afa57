package model

import "time"

// DashboardStats holds the six school-scoped counters of the dashboard.
type DashboardStats struct {
	TotalStudents  int `json:"total_alunos"`
	ActiveQuizzes  int `json:"quizzes_ativos"`
	ActiveTasks    int `json:"tarefas_ativas"`
	MessagesSent   int `json:"mensagens_enviadas"`
	PendingQuizzes int `json:"quizzes_pendentes"`
	PendingTasks   int `json:"tarefas_pendentes"`
}

// ActivityKind tags a recent activity row with its source table.
type ActivityKind string

const (
	ActivityQuiz    ActivityKind = "quiz"
	ActivityTask    ActivityKind = "tarefa"
	ActivityMessage ActivityKind = "mensagem"
)

// RecentActivity is one row of the dashboard activity feed.
type RecentActivity struct {
	Kind      ActivityKind `json:"tipo"`
	ID        int          `json:"id"`
	Title     string       `json:"titulo"`
	ClassName *string      `json:"serie"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

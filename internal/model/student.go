package model

// UserStatusActive marks a usuarios row as active.
const UserStatusActive = "ativo"

// Student is a child user enrolled in one of the school's classes.
type Student struct {
	ID        int     `json:"id"`
	Name      string  `json:"nome"`
	Email     *string `json:"email"`
	ClassID   int     `json:"serie_id"`
	ClassName string  `json:"serie"`
}

// Guardian is the contact projection of a student's guardian.
type Guardian struct {
	Name  string  `json:"nome"`
	Email *string `json:"email"`
	Phone *string `json:"telefone"`
}

// StudentDetail extends Student with progress aggregates and guardian contact.
type StudentDetail struct {
	Student
	Points         int       `json:"pontos"`
	TasksCompleted int       `json:"tarefas_concluidas"`
	QuizzesTaken   int       `json:"quizzes_concluidos"`
	Guardian       *Guardian `json:"responsavel"`
}

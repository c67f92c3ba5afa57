package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
)

// ReportRepository runs the aggregate queries behind the report endpoints.
type ReportRepository struct {
	db DBTX
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: pool}
}

// contentFilter scopes quizzes or tasks (aliased by alias) to the report
// parameters. withClass=false leaves the class clause out for queries that
// already correlate on the class.
func contentFilter(alias string, p model.ReportParams, since time.Time, withClass bool) Filter {
	f := Filter{}.
		Where(alias+".escola_id = ?", p.SchoolID).
		Where(alias+".created_at >= ?", since)
	if withClass && p.ClassID != nil {
		f = f.Where(alias+".serie_id = ?", *p.ClassID)
	}
	if p.Subject != "" {
		f = f.Where(alias+".materia = ?", p.Subject)
	}
	return f
}

// classFilter scopes the series table (aliased s) to the report parameters.
func classFilter(p model.ReportParams) Filter {
	f := Filter{}.Where("s.escola_id = ?", p.SchoolID)
	if p.ClassID != nil {
		f = f.Where("s.id = ?", *p.ClassID)
	}
	return f
}

// GetSummary builds the headline counters of a report. Students are counted
// over active classes only, matching GetByClass.
func (r *ReportRepository) GetSummary(ctx context.Context, p model.ReportParams, since time.Time) (*model.ReportSummary, error) {
	var args Args
	query := fmt.Sprintf(
		`SELECT
			(SELECT COUNT(*) FROM usuarios u JOIN series s ON s.id = u.serie_id
			 WHERE u.tipo = 'crianca' AND u.status = 'ativo' AND s.ativo AND %s),
			(SELECT COUNT(*) FROM tarefas t WHERE %s),
			(SELECT COUNT(*) FROM quizzes q WHERE %s),
			(SELECT COALESCE(AVG(qr.pontuacao), 0)::float8
			 FROM quiz_resultados qr JOIN quizzes q ON q.id = qr.quiz_id WHERE %s)`,
		classFilter(p).Render(&args),
		contentFilter("t", p, since, true).Render(&args),
		contentFilter("q", p, since, true).Render(&args),
		contentFilter("q", p, since, true).Render(&args),
	)

	sum := &model.ReportSummary{}
	err := r.db.QueryRow(ctx, query, args...).
		Scan(&sum.TotalStudents, &sum.TotalTasks, &sum.TotalQuizzes, &sum.AverageScore)
	if err != nil {
		return nil, err
	}
	return sum, nil
}

// GetByClass aggregates activity per active class.
func (r *ReportRepository) GetByClass(ctx context.Context, p model.ReportParams, since time.Time) ([]model.ClassReport, error) {
	var args Args
	query := fmt.Sprintf(
		`SELECT s.id, s.nome,
			(SELECT COUNT(*) FROM usuarios u
			 WHERE u.serie_id = s.id AND u.tipo = 'crianca' AND u.status = 'ativo'),
			(SELECT COUNT(*) FROM tarefas t WHERE t.serie_id = s.id AND %s),
			(SELECT COUNT(*) FROM quizzes q WHERE q.serie_id = s.id AND %s),
			(SELECT COALESCE(AVG(qr.pontuacao), 0)::float8
			 FROM quiz_resultados qr JOIN quizzes q ON q.id = qr.quiz_id
			 WHERE q.serie_id = s.id AND %s)
		 FROM series s
		 WHERE s.ativo AND %s
		 ORDER BY s.nome`,
		contentFilter("t", p, since, false).Render(&args),
		contentFilter("q", p, since, false).Render(&args),
		contentFilter("q", p, since, false).Render(&args),
		classFilter(p).Render(&args),
	)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := []model.ClassReport{}
	for rows.Next() {
		var c model.ClassReport
		if err := rows.Scan(&c.ClassID, &c.ClassName, &c.TotalStudents, &c.TotalTasks,
			&c.TotalQuizzes, &c.QuizAverage); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// GetBySubject aggregates activity per subject across quizzes and tasks.
func (r *ReportRepository) GetBySubject(ctx context.Context, p model.ReportParams, since time.Time) ([]model.SubjectReport, error) {
	var args Args
	query := fmt.Sprintf(
		`SELECT materia,
			SUM(tarefas)::int,
			SUM(quizzes)::int,
			COALESCE(SUM(soma) / NULLIF(SUM(respostas), 0), 0)::float8
		 FROM (
			SELECT q.materia, 0 AS tarefas, 1 AS quizzes,
				COALESCE(SUM(qr.pontuacao), 0) AS soma, COUNT(qr.id) AS respostas
			FROM quizzes q LEFT JOIN quiz_resultados qr ON qr.quiz_id = q.id
			WHERE %s
			GROUP BY q.id, q.materia
			UNION ALL
			SELECT t.materia, 1, 0, 0, 0
			FROM tarefas t
			WHERE %s
		 ) x
		 GROUP BY materia
		 ORDER BY materia`,
		contentFilter("q", p, since, true).Render(&args),
		contentFilter("t", p, since, true).Render(&args),
	)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := []model.SubjectReport{}
	for rows.Next() {
		var s model.SubjectReport
		if err := rows.Scan(&s.Subject, &s.TotalTasks, &s.TotalQuizzes, &s.QuizAverage); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// GetRecentActivities returns the latest quizzes and tasks with their
// participation figures. Quiz completion is the mean score; task completion
// is the share of deliveries marked as completed, as a percentage.
func (r *ReportRepository) GetRecentActivities(ctx context.Context, p model.ReportParams, since time.Time) ([]model.ActivityReport, error) {
	var args Args
	query := fmt.Sprintf(
		`SELECT tipo, id, titulo, materia, serie, created_at, participantes, taxa FROM (
			SELECT 'quiz' AS tipo, q.id, q.titulo, q.materia, s.nome AS serie, q.created_at,
				COUNT(DISTINCT qr.aluno_id) AS participantes,
				COALESCE(AVG(qr.pontuacao), 0)::float8 AS taxa
			FROM quizzes q
			LEFT JOIN series s ON s.id = q.serie_id
			LEFT JOIN quiz_resultados qr ON qr.quiz_id = q.id
			WHERE %s
			GROUP BY q.id, s.nome
			UNION ALL
			SELECT 'tarefa', t.id, t.titulo, t.materia, s.nome, t.created_at,
				COUNT(DISTINCT te.aluno_id),
				COALESCE(AVG(CASE WHEN te.status = 'concluida' THEN 100 ELSE 0 END), 0)::float8
			FROM tarefas t
			LEFT JOIN series s ON s.id = t.serie_id
			LEFT JOIN tarefa_entregas te ON te.tarefa_id = t.id
			WHERE %s
			GROUP BY t.id, s.nome
		 ) a
		 ORDER BY created_at DESC
		 LIMIT %s`,
		contentFilter("q", p, since, true).Render(&args),
		contentFilter("t", p, since, true).Render(&args),
		args.Bind(recentActivityLimit),
	)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []model.ActivityReport{}
	for rows.Next() {
		var a model.ActivityReport
		if err := rows.Scan(&a.Kind, &a.ID, &a.Title, &a.Subject, &a.ClassName, &a.CreatedAt,
			&a.Participants, &a.CompletionRate); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

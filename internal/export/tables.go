// Package export renders assembled reports as downloadable documents.
package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
)

// table is one report section laid out as a header row plus data rows.
type table struct {
	Title  string
	Header []string
	Rows   [][]interface{}
}

// buildTables flattens a report into the four sections, in display order.
func buildTables(r *model.Report) []table {
	summary := table{
		Title:  "Resumo",
		Header: []string{"Indicador", "Valor"},
		Rows: [][]interface{}{
			{"Período (dias)", r.PeriodDays},
			{"Total de alunos", r.Summary.TotalStudents},
			{"Total de tarefas", r.Summary.TotalTasks},
			{"Total de quizzes", r.Summary.TotalQuizzes},
			{"Média geral", round2(r.Summary.AverageScore)},
		},
	}

	byClass := table{
		Title:  "Por Série",
		Header: []string{"Série", "Alunos", "Tarefas", "Quizzes", "Média quiz"},
	}
	for _, c := range r.ByClass {
		byClass.Rows = append(byClass.Rows, []interface{}{
			c.ClassName, c.TotalStudents, c.TotalTasks, c.TotalQuizzes, round2(c.QuizAverage),
		})
	}

	bySubject := table{
		Title:  "Por Matéria",
		Header: []string{"Matéria", "Tarefas", "Quizzes", "Média quiz"},
	}
	for _, s := range r.BySubject {
		bySubject.Rows = append(bySubject.Rows, []interface{}{
			s.Subject, s.TotalTasks, s.TotalQuizzes, round2(s.QuizAverage),
		})
	}

	activities := table{
		Title:  "Atividades Recentes",
		Header: []string{"Tipo", "Título", "Matéria", "Série", "Criado em", "Participantes", "Conclusão (%)"},
	}
	for _, a := range r.RecentActivities {
		class := ""
		if a.ClassName != nil {
			class = *a.ClassName
		}
		activities.Rows = append(activities.Rows, []interface{}{
			string(a.Kind), a.Title, a.Subject, class, a.CreatedAt.Format("02/01/2006 15:04"),
			a.Participants, round2(a.CompletionRate),
		})
	}

	return []table{summary, byClass, bySubject, activities}
}

func round2(v float64) float64 {
	f, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return f
}

// cellText formats a table cell for text output.
func cellText(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	case time.Time:
		return x.Format("02/01/2006")
	default:
		return fmt.Sprint(x)
	}
}

// Filename returns the attachment name for a report generated at t.
func Filename(format model.ExportFormat, t time.Time) string {
	ext := "pdf"
	if format == model.ExportExcel {
		ext = "xlsx"
	}
	return fmt.Sprintf("relatorio_%s.%s", t.Format("2006-01-02"), ext)
}

// ContentType returns the MIME type of the rendered document.
func ContentType(format model.ExportFormat) string {
	if format == model.ExportExcel {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/pdf"
}

// Render dispatches to the renderer for format.
func Render(format model.ExportFormat, r *model.Report) ([]byte, error) {
	switch format {
	case model.ExportExcel:
		return Excel(r)
	case model.ExportPDF:
		return PDF(r)
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

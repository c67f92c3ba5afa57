package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
)

type fakeRosterService struct {
	err error
}

func (f fakeRosterService) ListClasses(context.Context, int) ([]model.ClassSummary, error) {
	return []model.ClassSummary{{ID: 1, Name: "1º ano", AcademicYear: 2026, StudentsCount: 3}}, f.err
}

func (f fakeRosterService) ListStudents(context.Context, int) ([]model.Student, error) {
	return []model.Student{{ID: 5, Name: "Ana", ClassID: 1, ClassName: "1º ano"}}, f.err
}

func (f fakeRosterService) ListStudentsDetailed(context.Context, int) ([]model.StudentDetail, error) {
	return []model.StudentDetail{
		{Student: model.Student{ID: 5, Name: "Ana"}, Points: 30, TasksCompleted: 2},
	}, f.err
}

type fakeDashboardService struct{}

func (fakeDashboardService) GetStats(context.Context, int) (*model.DashboardStats, error) {
	return &model.DashboardStats{TotalStudents: 3, ActiveQuizzes: 1}, nil
}

func (fakeDashboardService) GetRecentActivities(context.Context, int) ([]model.RecentActivity, error) {
	return []model.RecentActivity{{Kind: model.ActivityQuiz, ID: 1, Title: "Q", CreatedAt: time.Now()}}, nil
}

func TestRosterHandlers(t *testing.T) {
	h := NewRosterHandler(fakeRosterService{}, zerolog.Nop())
	r := gin.New()
	r.Use(withSchool(1))
	r.GET("/series", h.ListClasses)
	r.GET("/alunos", h.ListStudents)
	r.GET("/alunos/detalhado", h.ListStudentsDetailed)

	w := doJSON(r, http.MethodGet, "/series", nil)
	series, _ := decode(t, w)["series"].([]interface{})
	if w.Code != http.StatusOK || len(series) != 1 || series[0].(map[string]interface{})["total_alunos"] != float64(3) {
		t.Fatalf("series: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/alunos/detalhado", nil)
	alunos, _ := decode(t, w)["alunos"].([]interface{})
	first := alunos[0].(map[string]interface{})
	if first["pontos"] != float64(30) || first["responsavel"] != nil {
		t.Fatalf("detailed: %s", w.Body.String())
	}
}

func TestRosterHandlerInternalError(t *testing.T) {
	h := NewRosterHandler(fakeRosterService{err: errors.New("boom")}, zerolog.Nop())
	r := gin.New()
	r.Use(withSchool(1))
	r.GET("/alunos", h.ListStudents)
	expectError(t, doJSON(r, http.MethodGet, "/alunos", nil), http.StatusInternalServerError, "Erro interno do servidor")
}

func TestRosterHandlerWithoutClaims(t *testing.T) {
	h := NewRosterHandler(fakeRosterService{}, zerolog.Nop())
	r := gin.New()
	r.GET("/alunos", h.ListStudents)
	expectError(t, doJSON(r, http.MethodGet, "/alunos", nil), http.StatusUnauthorized, "Token não fornecido")
}

func TestDashboardHandlers(t *testing.T) {
	h := NewDashboardHandler(fakeDashboardService{}, zerolog.Nop())
	r := gin.New()
	r.Use(withSchool(1))
	r.GET("/dashboard/estatisticas", h.GetStats)
	r.GET("/dashboard/atividades-recentes", h.GetRecentActivities)

	w := doJSON(r, http.MethodGet, "/dashboard/estatisticas", nil)
	body := decode(t, w)
	for _, k := range []string{"total_alunos", "quizzes_ativos", "tarefas_ativas", "mensagens_enviadas", "quizzes_pendentes", "tarefas_pendentes"} {
		if _, ok := body[k]; !ok {
			t.Fatalf("missing %s in %v", k, body)
		}
	}

	w = doJSON(r, http.MethodGet, "/dashboard/atividades-recentes", nil)
	activities, _ := decode(t, w)["atividades"].([]interface{})
	if len(activities) != 1 || activities[0].(map[string]interface{})["tipo"] != "quiz" {
		t.Fatalf("activities: %s", w.Body.String())
	}
}

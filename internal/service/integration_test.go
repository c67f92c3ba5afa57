//go:build integration

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/database"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/repository"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/testutil/testdb"
)

var (
	testDB      *testdb.DBHandle
	testDBError error
)

func TestMain(m *testing.M) {
	testDB, testDBError = testdb.Start(context.Background())
	code := m.Run()
	if testDB != nil {
		testDB.Close()
	}
	os.Exit(code)
}

type services struct {
	pool    *pgxpool.Pool
	schools *SchoolService
	roster  *RosterService
	content *ContentService
	dash    *DashboardService
	reports *ReportService
	classes *repository.ClassRepository
	student *repository.StudentRepository
}

func setup(t *testing.T) *services {
	t.Helper()
	if testDBError != nil {
		t.Skipf("postgres container unavailable: %v", testDBError)
	}
	ctx := context.Background()
	if err := testDB.Reset(ctx); err != nil {
		t.Fatal(err)
	}

	pool, log := testDB.Pool, zerolog.Nop()
	classRepo := repository.NewClassRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	return &services{
		pool:    pool,
		schools: NewSchoolService(pool, repository.NewSchoolRepository(pool), classRepo, testAuth(), log),
		roster:  NewRosterService(classRepo, studentRepo),
		content: NewContentService(pool, repository.NewQuizRepository(pool), repository.NewTaskRepository(pool), repository.NewMessageRepository(pool), log),
		dash:    NewDashboardService(repository.NewDashboardRepository(pool)),
		reports: NewReportService(repository.NewReportRepository(pool), log),
		classes: classRepo,
		student: studentRepo,
	}
}

func (s *services) count(t *testing.T, query string, args ...interface{}) int {
	t.Helper()
	var n int
	if err := s.pool.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		t.Fatal(err)
	}
	return n
}

func (s *services) enroll(t *testing.T, classID int, name string, guardian *model.Guardian) int {
	t.Helper()
	ctx := context.Background()
	var id int
	err := database.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		id, err = s.student.WithTx(tx).Enroll(ctx, classID, name, nil, guardian)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func (s *services) register(t *testing.T) (*model.School, []model.ClassSummary) {
	t.Helper()
	ctx := context.Background()
	school, _, err := s.schools.Register(ctx, validRegistration())
	if err != nil {
		t.Fatal(err)
	}
	classes, err := s.roster.ListClasses(ctx, school.ID)
	if err != nil {
		t.Fatal(err)
	}
	return school, classes
}

func TestRegisterPersistsSchoolAndClasses(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	req := validRegistration()
	req.Classes = []string{"1º ano", "2º ano", "3º ano"}
	school, token, err := s.schools.Register(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if token == "" || school.ID == 0 || school.Status != model.SchoolStatusActive {
		t.Fatalf("unexpected result %+v", school)
	}

	var hash string
	if err := s.pool.QueryRow(ctx, `SELECT senha_hash FROM escolas WHERE id = $1`, school.ID).Scan(&hash); err != nil {
		t.Fatal(err)
	}
	if hash == req.Password || testAuth().CheckPassword(hash, req.Password) != nil {
		t.Fatal("password not stored as a bcrypt hash")
	}

	classes, err := s.roster.ListClasses(ctx, school.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(classes) != 3 {
		t.Fatalf("got %d classes, want 3", len(classes))
	}
	for _, c := range classes {
		if c.AcademicYear != time.Now().Year() || c.StudentsCount != 0 {
			t.Fatalf("unexpected class %+v", c)
		}
	}
}

func TestRegisterDuplicates(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	s.register(t)

	sameEmail := validRegistration()
	sameEmail.TaxID = "98.765.432/0001-10"
	if _, _, err := s.schools.Register(ctx, sameEmail); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email: %v", err)
	}

	sameCNPJ := validRegistration()
	sameCNPJ.Email = "outra@modelo.edu.br"
	if _, _, err := s.schools.Register(ctx, sameCNPJ); !errors.Is(err, ErrCNPJTaken) {
		t.Fatalf("duplicate cnpj: %v", err)
	}

	if n := s.count(t, `SELECT COUNT(*) FROM series`); n != 2 {
		t.Fatalf("failed registrations left %d classes behind", n-2)
	}
}

func TestConcurrentRegistrationSameEmail(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRegistration()
			req.TaxID = fmt.Sprintf("12.345.678/0001-%02d", i)
			_, _, errs[i] = s.schools.Register(ctx, req)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case !errors.Is(err, ErrEmailTaken):
			t.Fatalf("unexpected error %v", err)
		}
	}
	if ok != 1 || s.count(t, `SELECT COUNT(*) FROM escolas`) != 1 {
		t.Fatalf("%d registrations succeeded", ok)
	}
}

func TestLoginAndChangePassword(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	school, _ := s.register(t)

	if _, _, err := s.schools.Login(ctx, &model.LoginRequest{Email: school.Email, Password: "errada"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, _, err := s.schools.Login(ctx, &model.LoginRequest{Email: "nada@x.com", Password: "segredo"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: %v", err)
	}

	err := s.schools.ChangePassword(ctx, school.ID, &model.ChangePasswordRequest{CurrentPassword: "errada", NewPassword: "novasenha"})
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("wrong current password: %v", err)
	}
	if err := s.schools.ChangePassword(ctx, school.ID+100, &model.ChangePasswordRequest{CurrentPassword: "segredo", NewPassword: "novasenha"}); !errors.Is(err, ErrSchoolNotFound) {
		t.Fatalf("unknown school: %v", err)
	}
	if err := s.schools.ChangePassword(ctx, school.ID, &model.ChangePasswordRequest{CurrentPassword: "segredo", NewPassword: "novasenha"}); err != nil {
		t.Fatal(err)
	}

	if _, _, err := s.schools.Login(ctx, &model.LoginRequest{Email: school.Email, Password: "segredo"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still valid: %v", err)
	}
	if _, token, err := s.schools.Login(ctx, &model.LoginRequest{Email: school.Email, Password: "novasenha"}); err != nil || token == "" {
		t.Fatalf("new password rejected: %v", err)
	}

	if _, err := s.pool.Exec(ctx, `UPDATE escolas SET status = 'suspenso' WHERE id = $1`, school.ID); err != nil {
		t.Fatal(err)
	}
	var inactive *SchoolInactiveError
	if _, _, err := s.schools.Login(ctx, &model.LoginRequest{Email: school.Email, Password: "novasenha"}); !errors.As(err, &inactive) {
		t.Fatalf("suspended school: %v", err)
	}
}

func TestListActiveSchools(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	active, _ := s.register(t)

	other := validRegistration()
	other.Name, other.Email, other.TaxID = "Outra Escola", "outra@escola.com", "11.111.111/0001-11"
	inactive, _, err := s.schools.Register(ctx, other)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.pool.Exec(ctx, `UPDATE escolas SET status = 'inativo' WHERE id = $1`, inactive.ID); err != nil {
		t.Fatal(err)
	}

	list, err := s.schools.ListActive(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != active.ID {
		t.Fatalf("unexpected listing %+v", list)
	}
}

func TestCreateQuizIsAtomic(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	school, classes := s.register(t)
	studentID := s.enroll(t, classes[0].ID, "Ana", nil)

	req := &model.CreateQuizRequest{
		Title: "Frações", Subject: "Matemática", ClassID: classes[0].ID,
		RecipientType:    model.RecipientIndividual,
		SelectedStudents: []int{studentID, studentID + 999},
		Questions: []model.QuizQuestion{
			{Statement: "1/2 + 1/2?", Options: json.RawMessage(`["1","2"]`), CorrectAnswer: "1"},
		},
	}
	if _, err := s.content.CreateQuiz(ctx, school.ID, req); err == nil {
		t.Fatal("expected foreign key failure")
	}
	if n := s.count(t, `SELECT COUNT(*) FROM quizzes`) + s.count(t, `SELECT COUNT(*) FROM quiz_perguntas`); n != 0 {
		t.Fatalf("partial quiz left behind (%d rows)", n)
	}

	req.SelectedStudents = []int{studentID}
	id, err := s.content.CreateQuiz(ctx, school.ID, req)
	if err != nil {
		t.Fatal(err)
	}
	if s.count(t, `SELECT COUNT(*) FROM quiz_perguntas WHERE quiz_id = $1 AND ordem = 1 AND tipo = 'multipla_escolha'`, id) != 1 ||
		s.count(t, `SELECT COUNT(*) FROM quiz_destinatarios WHERE quiz_id = $1`, id) != 1 {
		t.Fatal("questions or recipients missing")
	}
	if s.count(t, `SELECT COUNT(*) FROM quizzes WHERE id = $1 AND pontos_por_questao = 10 AND pontuacao_minima = 60 AND dificuldade = 'medio'`, id) != 1 {
		t.Fatal("defaults not applied")
	}
}

func TestAssignTaskIsAtomic(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	school, classes := s.register(t)
	studentID := s.enroll(t, classes[0].ID, "Ana", nil)

	req := &model.CreateTaskRequest{
		Title: "Redação", Subject: "Português", ClassID: classes[0].ID,
		DueAt:            model.Timestamp{Time: time.Now().Add(72 * time.Hour)},
		RecipientType:    model.RecipientIndividual,
		SelectedStudents: []int{studentID, studentID + 999},
	}
	if _, err := s.content.AssignTask(ctx, school.ID, req); err == nil {
		t.Fatal("expected foreign key failure")
	}
	if n := s.count(t, `SELECT COUNT(*) FROM tarefas`) + s.count(t, `SELECT COUNT(*) FROM tarefa_destinatarios`); n != 0 {
		t.Fatalf("partial task left behind (%d rows)", n)
	}
}

func TestSendMessageIsAtomic(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	school, classes := s.register(t)
	studentID := s.enroll(t, classes[0].ID, "Ana", nil)

	req := &model.SendMessageRequest{
		Subject: "Reunião", Body: "Sexta às 19h",
		RecipientType:    model.RecipientIndividual,
		SelectedStudents: []int{studentID, studentID + 999},
	}
	if _, _, err := s.content.SendMessage(ctx, school.ID, req); err == nil {
		t.Fatal("expected foreign key failure")
	}
	if n := s.count(t, `SELECT COUNT(*) FROM mensagens`) + s.count(t, `SELECT COUNT(*) FROM mensagem_destinatarios`); n != 0 {
		t.Fatalf("partial message left behind (%d rows)", n)
	}
}

func TestRepeatedRecipientsStoredOnce(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	school, classes := s.register(t)
	studentID := s.enroll(t, classes[0].ID, "Ana", nil)

	id, _, err := s.content.SendMessage(ctx, school.ID, &model.SendMessageRequest{
		Subject: "Passeio", Body: "Autorização até sexta",
		RecipientType:    model.RecipientIndividual,
		SelectedStudents: []int{studentID, studentID},
	})
	if err != nil {
		t.Fatal(err)
	}
	if n := s.count(t, `SELECT COUNT(*) FROM mensagem_destinatarios WHERE mensagem_id = $1`, id); n != 1 {
		t.Fatalf("recipients = %d, want 1", n)
	}
}

func TestMessagesAndDashboard(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	school, classes := s.register(t)
	s.enroll(t, classes[0].ID, "Ana", nil)

	_, status, err := s.content.SendMessage(ctx, school.ID, &model.SendMessageRequest{
		Subject: "Reunião", Body: "Sexta às 19h", RecipientType: model.RecipientAll,
	})
	if err != nil || status != model.MessageStatusSent {
		t.Fatalf("send now: %v %s", err, status)
	}
	_, status, err = s.content.SendMessage(ctx, school.ID, &model.SendMessageRequest{
		Subject: "Férias", Body: "Início em julho", RecipientType: model.RecipientClass, ClassID: &classes[0].ID,
		SendAt: model.Timestamp{Time: time.Now().Add(48 * time.Hour)},
	})
	if err != nil || status != model.MessageStatusScheduled {
		t.Fatalf("schedule: %v %s", err, status)
	}

	if _, err := s.content.AssignTask(ctx, school.ID, &model.CreateTaskRequest{
		Title: "Redação", Subject: "Português", ClassID: classes[1].ID,
		DueAt: model.Timestamp{Time: time.Now().Add(72 * time.Hour)},
	}); err != nil {
		t.Fatal(err)
	}

	stats, err := s.dash.GetStats(ctx, school.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := model.DashboardStats{TotalStudents: 1, ActiveTasks: 1, MessagesSent: 1}
	if *stats != want {
		t.Fatalf("stats = %+v, want %+v", *stats, want)
	}

	activities, err := s.dash.GetRecentActivities(ctx, school.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(activities) != 3 || activities[0].Kind != model.ActivityTask {
		t.Fatalf("unexpected activities %+v", activities)
	}
}

func TestStudentDetailAggregates(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	school, classes := s.register(t)

	email, phone := "mae@example.com", "(11) 90000-0000"
	ana := s.enroll(t, classes[0].ID, "Ana", &model.Guardian{Name: "Mãe da Ana", Email: &email, Phone: &phone})
	s.enroll(t, classes[1].ID, "Bruno", nil)

	taskID, err := s.content.AssignTask(ctx, school.ID, &model.CreateTaskRequest{
		Title: "Leitura", Subject: "Português", ClassID: classes[0].ID, RewardPoints: intPtr(25),
		DueAt: model.Timestamp{Time: time.Now().Add(time.Hour)},
	})
	if err != nil {
		t.Fatal(err)
	}
	// Two concluded deliveries of the same task count once.
	for i := 0; i < 2; i++ {
		if _, err := s.pool.Exec(ctx,
			`INSERT INTO tarefa_entregas (tarefa_id, aluno_id, status, concluida_em) VALUES ($1, $2, 'concluida', NOW())`,
			taskID, ana); err != nil {
			t.Fatal(err)
		}
	}

	students, err := s.roster.ListStudentsDetailed(ctx, school.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(students) != 2 {
		t.Fatalf("got %d students", len(students))
	}
	for _, st := range students {
		switch st.Name {
		case "Ana":
			if st.Points != 25 || st.TasksCompleted != 1 || st.Guardian == nil || st.Guardian.Name != "Mãe da Ana" {
				t.Fatalf("ana = %+v", st)
			}
		case "Bruno":
			if st.Points != 0 || st.Guardian != nil {
				t.Fatalf("bruno = %+v", st)
			}
		}
	}

	classesAfter, err := s.roster.ListClasses(ctx, school.ID)
	if err != nil {
		t.Fatal(err)
	}
	if classesAfter[0].StudentsCount != 1 || classesAfter[1].StudentsCount != 1 {
		t.Fatalf("class counts %+v", classesAfter)
	}
}

func TestReportAgainstDatabase(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	school, classes := s.register(t)
	ana := s.enroll(t, classes[0].ID, "Ana", nil)

	quizID, err := s.content.CreateQuiz(ctx, school.ID, &model.CreateQuizRequest{
		Title: "Tabuada", Subject: "Matemática", ClassID: classes[0].ID,
		Questions: []model.QuizQuestion{{Statement: "2x3?", CorrectAnswer: "6"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.pool.Exec(ctx,
		`INSERT INTO quiz_resultados (quiz_id, aluno_id, pontuacao, concluido_em) VALUES ($1, $2, 80, NOW())`,
		quizID, ana); err != nil {
		t.Fatal(err)
	}

	report, err := s.reports.Build(ctx, model.ReportParams{SchoolID: school.ID, Days: 30, Type: model.ReportGeneral})
	if err != nil {
		t.Fatal(err)
	}
	if report.Summary.TotalStudents != 1 || report.Summary.TotalQuizzes != 1 || report.Summary.AverageScore != 80 {
		t.Fatalf("summary = %+v", report.Summary)
	}
	if len(report.ByClass) != 2 || len(report.BySubject) != 1 || len(report.RecentActivities) != 1 {
		t.Fatalf("sections: %d classes, %d subjects, %d activities",
			len(report.ByClass), len(report.BySubject), len(report.RecentActivities))
	}

	doc, err := s.reports.Export(ctx, model.ReportParams{SchoolID: school.ID, Days: 30}, model.ExportExcel)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Data) == 0 {
		t.Fatal("empty workbook")
	}
}

func TestReportSummaryMatchesActiveClasses(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	school, classes := s.register(t)
	s.enroll(t, classes[0].ID, "Ana", nil)
	s.enroll(t, classes[1].ID, "Bia", nil)
	if _, err := s.pool.Exec(ctx, `UPDATE series SET ativo = false WHERE id = $1`, classes[1].ID); err != nil {
		t.Fatal(err)
	}

	report, err := s.reports.Build(ctx, model.ReportParams{SchoolID: school.ID, Days: 30, Type: model.ReportGeneral})
	if err != nil {
		t.Fatal(err)
	}
	perClass := 0
	for _, c := range report.ByClass {
		perClass += c.TotalStudents
	}
	if report.Summary.TotalStudents != 1 || perClass != 1 {
		t.Fatalf("summary counts %d students, classes count %d", report.Summary.TotalStudents, perClass)
	}
}

func intPtr(v int) *int { return &v }

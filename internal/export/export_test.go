package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
)

func sampleReport() *model.Report {
	class := "1º ano"
	return &model.Report{
		Type:        model.ReportGeneral,
		PeriodDays:  30,
		GeneratedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		Summary:     model.ReportSummary{TotalStudents: 12, TotalTasks: 4, TotalQuizzes: 2, AverageScore: 77.456},
		ByClass: []model.ClassReport{
			{ClassID: 1, ClassName: "1º ano", TotalStudents: 12, TotalTasks: 4, TotalQuizzes: 2, QuizAverage: 77.456},
		},
		BySubject: []model.SubjectReport{
			{Subject: "Matemática", TotalTasks: 3, TotalQuizzes: 1, QuizAverage: 80},
		},
		RecentActivities: []model.ActivityReport{
			{Kind: model.ActivityQuiz, ID: 9, Title: "Frações com um título bem longo que não cabe na coluna da tabela", Subject: "Matemática",
				ClassName: &class, CreatedAt: time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC), Participants: 10, CompletionRate: 77.456},
		},
	}
}

func TestExcelContainsEverySection(t *testing.T) {
	data, err := Excel(sampleReport())
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	want := []string{"Resumo", "Por Série", "Por Matéria", "Atividades Recentes"}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sheets = %v, want %v", got, want)
		}
	}

	rows, err := f.GetRows("Resumo")
	if err != nil {
		t.Fatal(err)
	}
	if rows[0][0] != "Indicador" || rows[2][0] != "Total de alunos" || rows[2][1] != "12" {
		t.Fatalf("unexpected summary rows %v", rows)
	}

	rows, err = f.GetRows("Por Matéria")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1][0] != "Matemática" {
		t.Fatalf("unexpected subject rows %v", rows)
	}
}

func TestExcelEmptySections(t *testing.T) {
	data, err := Excel(&model.Report{Type: model.ReportGeneral, PeriodDays: 7})
	if err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, _ := f.GetRows("Por Série")
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %v", rows)
	}
}

func TestPDFIsADocument(t *testing.T) {
	data, err := PDF(sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not start with %%PDF: %q", data[:8])
	}
}

func TestPDFPaginatesLongTables(t *testing.T) {
	r := sampleReport()
	for i := 0; i < 120; i++ {
		r.BySubject = append(r.BySubject, model.SubjectReport{Subject: "Matéria", TotalTasks: i})
	}
	short, err := PDF(sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	long, err := PDF(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(long) <= len(short) {
		t.Fatal("expected the long report to produce a larger document")
	}
}

func TestFilenameAndContentType(t *testing.T) {
	day := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	if got := Filename(model.ExportPDF, day); got != "relatorio_2026-03-10.pdf" {
		t.Fatalf("got %s", got)
	}
	if got := Filename(model.ExportExcel, day); got != "relatorio_2026-03-10.xlsx" {
		t.Fatalf("got %s", got)
	}
	if ContentType(model.ExportPDF) != "application/pdf" {
		t.Fatal("wrong pdf content type")
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	if _, err := Render(model.ExportFormat("csv"), sampleReport()); err == nil {
		t.Fatal("expected error")
	}
}

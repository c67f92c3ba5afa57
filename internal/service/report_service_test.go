package service

import (
	"testing"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
)

func TestParseReportParamsDefaults(t *testing.T) {
	p, err := ParseReportParams(5, ReportQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if p.SchoolID != 5 || p.Days != 30 || p.Type != model.ReportGeneral || p.ClassID != nil || p.Subject != "" {
		t.Fatalf("unexpected defaults %+v", p)
	}
}

func TestParseReportParamsValues(t *testing.T) {
	p, err := ParseReportParams(5, ReportQuery{Period: "7", ClassID: "3", Subject: " Ciências ", Type: "atividades"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Days != 7 || p.ClassID == nil || *p.ClassID != 3 || p.Subject != "Ciências" || p.Type != model.ReportActivities {
		t.Fatalf("unexpected params %+v", p)
	}
}

func TestParseReportParamsRejects(t *testing.T) {
	cases := []ReportQuery{
		{Period: "0"},
		{Period: "-3"},
		{Period: "abc"},
		{Period: "3651"},
		{ClassID: "x"},
		{Type: "financeiro"},
	}
	for _, q := range cases {
		if _, err := ParseReportParams(1, q); err == nil {
			t.Errorf("%+v: expected error", q)
		}
	}
}

func TestParseExportFormat(t *testing.T) {
	if f, err := ParseExportFormat(""); err != nil || f != model.ExportPDF {
		t.Fatalf("default: %v %v", f, err)
	}
	if f, err := ParseExportFormat("excel"); err != nil || f != model.ExportExcel {
		t.Fatalf("excel: %v %v", f, err)
	}
	if _, err := ParseExportFormat("csv"); err == nil {
		t.Fatal("expected error for csv")
	}
}

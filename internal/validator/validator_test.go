package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCheckReturnsFirstFailure(t *testing.T) {
	err := Check(
		Rule{Value: "escola@example.com", Tag: "email", Message: "email"},
		Rule{Value: "123", Tag: "min=6", Message: "senha"},
		Rule{Value: "bad", Tag: "telefone", Message: "telefone"},
	)
	if err == nil || err.Message != "senha" {
		t.Fatalf("got %v, want senha", err)
	}
}

func TestCustomTags(t *testing.T) {
	cases := []struct {
		tag   string
		value string
		ok    bool
	}{
		{"telefone", "(11) 98765-4321", true},
		{"telefone", "11987654321", false},
		{"telefone", "(11) 8765-4321", false},
		{"cnpj", "12.345.678/0001-90", true},
		{"cnpj", "12345678000190", false},
		{"cep", "01310-100", true},
		{"cep", "01310100", false},
	}
	for _, tc := range cases {
		err := Check(Rule{Value: tc.value, Tag: tc.tag, Message: "x"})
		if (err == nil) != tc.ok {
			t.Errorf("%s(%q): ok=%v, want %v", tc.tag, tc.value, err == nil, tc.ok)
		}
	}
}

func TestCheckAllPass(t *testing.T) {
	if err := Check(Rule{Value: 3, Tag: "gt=0", Message: "x"}); err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
}

type bindTarget struct {
	Name  string   `json:"nome" binding:"required"`
	Email string   `json:"email" binding:"required"`
	Tags  []string `json:"series" binding:"required,min=1,dive,required"`
}

func bindBody(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := Setup(); err != nil {
		t.Fatal(err)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	var dst bindTarget
	return Bind(c, &dst)
}

func TestBindReportsMissingFieldsInOrder(t *testing.T) {
	err := bindBody(t, `{"series":["1º ano",""]}`)
	got := FieldNames(err)
	want := []string{"nome", "email", "series"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", got, want)
	}
	if msgs := TranslateErrors(err); msgs["nome"] == "" {
		t.Fatalf("expected translated message for nome, got %v", msgs)
	}
}

func TestBindMalformed(t *testing.T) {
	err := bindBody(t, `{"nome":`)
	if FieldNames(err) != nil {
		t.Fatal("malformed body must not report field names")
	}
	if err == nil || !strings.Contains(err.Error(), ErrMalformedBody.Error()) {
		t.Fatalf("got %v", err)
	}
}

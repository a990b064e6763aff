package payrollhandler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nomina/internal/domain/payroll"
	"nomina/internal/platform/metrics"
	"nomina/internal/transport/http/middleware"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
	RequestID string `json:"requestId"`
}

func newTestRouter(t *testing.T) (http.Handler, *metrics.Collector) {
	t.Helper()
	statute, err := payroll.StatuteFor(payroll.DefaultYear)
	require.NoError(t, err)
	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	NewHandler(payroll.NewCalculator(statute), collector).RegisterRoutes(router)
	return router, collector
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestComputeMinimumWage(t *testing.T) {
	router, collector := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/payroll/compute", `{"salaryBase": 1160000}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)

	var result map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "1160000", result["wage"])
	assert.Equal(t, "140606", result["transportationSubsidy"])
	assert.Equal(t, "1300606", result["wagesEarned"])
	assert.Equal(t, "46400", result["healthBenefit"])
	assert.Equal(t, "1207806", result["wagesPaid"])
	assert.Equal(t, float64(30), result["paymentDays"])
	assert.Equal(t, uint64(1), collector.Snapshot()["computationsTotal"])
}

func TestComputeAcceptsStringSalaryAndDays(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/payroll/compute",
		`{"salaryBase": "3000000", "paymentDays": 30, "extralegalVacationDays": 5}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var result payroll.Result
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "500000", result.ExtralegalVacationWage.String())
	assert.Equal(t, "3220000", result.WagesPaid.String())
}

func TestComputeValidation(t *testing.T) {
	router, collector := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/payroll/compute", `{"salaryBase": 0, "paymentDays": 45}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "validation_error", env.Error.Code)
	fields, ok := env.Error.Details["fields"].([]any)
	require.True(t, ok)
	require.Len(t, fields, 2)
	assert.Equal(t, "paymentDays", fields[0].(map[string]any)["field"])
	assert.Equal(t, "salaryBase", fields[1].(map[string]any)["field"])
	assert.Equal(t, uint64(1), collector.Snapshot()["invalidInputsTotal"])
}

func TestComputeInvalidJSON(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"salaryBase":`},
		{name: "thousands separator", body: `{"salaryBase": "1,160,000"}`},
		{name: "unknown field", body: `{"salaryBase": 1000, "bonus": 1}`},
		{name: "trailing object", body: `{"salaryBase": 1000}{"x": 2}`},
		{name: "trailing garbage", body: `{"salaryBase": 1000} x`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doRequest(t, router, http.MethodPost, "/payroll/compute", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, "invalid_json", env.Error.Code)
		})
	}
}

func TestComputeRejectsSalaryOutOfRange(t *testing.T) {
	router, collector := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "exponent string", body: `{"salaryBase": "1e6"}`},
		{name: "exponent number", body: `{"salaryBase": 1E6}`},
		{name: "huge exponent", body: `{"salaryBase": "1e3000000"}`},
		{name: "above maximum", body: `{"salaryBase": 1000000000001}`},
		{name: "many digits", body: `{"salaryBase": 1` + strings.Repeat("0", 2000) + `}`},
		{name: "missing", body: `{"paymentDays": 30}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doRequest(t, router, http.MethodPost, "/payroll/compute", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, "validation_error", env.Error.Code)
			fields, ok := env.Error.Details["fields"].([]any)
			require.True(t, ok)
			require.Len(t, fields, 1)
			assert.Equal(t, "salaryBase", fields[0].(map[string]any)["field"])
		})
	}
	assert.Equal(t, uint64(0), collector.Snapshot()["computationsTotal"])
}

func TestComputeAllowsTrailingWhitespace(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodPost, "/payroll/compute", "{\"salaryBase\": 1160000}\n  ")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestComputeVacationOnly(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/payroll/compute",
		`{"salaryBase": 3000000, "paymentDays": 0, "extralegalVacationDays": 15}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var result payroll.Result
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "0", result.Wage.String())
	assert.Equal(t, "1500000", result.ExtralegalVacationWage.String())
}

func TestGetStatute(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/payroll/statutes/2023", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var statute map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &statute))
	assert.Equal(t, "1160000", statute["minimumWage"])
	assert.Equal(t, "42412", statute["taxValueUnit"])

	rec, env = doRequest(t, router, http.MethodGet, "/payroll/statutes/1999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "statute_not_found", env.Error.Code)

	rec, env = doRequest(t, router, http.MethodGet, "/payroll/statutes/latest", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_year", env.Error.Code)
}

func TestListStatutes(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/payroll/statutes", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"years":[2023]}`, string(env.Data))
}

func TestPayslip(t *testing.T) {
	router, collector := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodPost, "/payroll/payslip",
		`{"salaryBase": 5000000, "employeeName": "Ana Muñoz", "period": "2023/05"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="nomina-2023_05.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
	assert.Equal(t, uint64(1), collector.Snapshot()["payslipsTotal"])
}

func TestPayslipValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/payroll/payslip", `{"salaryBase": -1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", env.Error.Code)
}

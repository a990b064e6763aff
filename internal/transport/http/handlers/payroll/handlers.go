package payrollhandler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"nomina/internal/domain/payroll"
	"nomina/internal/input"
	"nomina/internal/platform/metrics"
	"nomina/internal/report"
	"nomina/internal/requestctx"
	"nomina/internal/transport/http/api"
	"nomina/internal/transport/http/middleware"
	"nomina/internal/transport/http/shared"
)

var errTrailingData = errors.New("unexpected data after JSON object")

type Handler struct {
	Calc    *payroll.Calculator
	Metrics *metrics.Collector
}

func NewHandler(calc *payroll.Calculator, collector *metrics.Collector) *Handler {
	return &Handler{Calc: calc, Metrics: collector}
}

// computePayload takes salaryBase as a number or a numeric string. It is
// parsed with the same rules as the command line.
type computePayload struct {
	SalaryBase             json.Number     `json:"salaryBase"`
	PaymentDays            *int            `json:"paymentDays"`
	ExtralegalVacationDays *int            `json:"extralegalVacationDays"`
	EmployeeName           string          `json:"employeeName"`
	Period                 string          `json:"period"`
}

func (p computePayload) input() (payroll.Input, error) {
	salary, err := input.ParseSalary(p.SalaryBase.String())
	if err != nil {
		return payroll.Input{}, err
	}
	in := payroll.NewInput(salary)
	if p.PaymentDays != nil {
		in.PaymentDays = *p.PaymentDays
	}
	if p.ExtralegalVacationDays != nil {
		in.ExtralegalVacationDays = *p.ExtralegalVacationDays
	}
	return in, input.Validate(in)
}

func decodePayload(r *http.Request) (computePayload, error) {
	var payload computePayload
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		return payload, err
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		return payload, err
	}
	return payload, nil
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/statutes", h.handleListStatutes)
		r.Get("/statutes/{year}", h.handleGetStatute)
		r.Post("/compute", h.handleCompute)
		r.Post("/payslip", h.handlePayslip)
	})
}

func (h *Handler) handleListStatutes(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]any{"years": payroll.StatuteYears()}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetStatute(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_year", "year must be a number", reqID)
		return
	}
	statute, err := payroll.StatuteFor(year)
	if errors.Is(err, payroll.ErrUnknownStatuteYear) {
		api.Fail(w, http.StatusNotFound, "statute_not_found", "no statute registered for that year", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "statute_failed", "failed to load statute", reqID)
		return
	}
	api.Success(w, statute, reqID)
}

func (h *Handler) handleCompute(w http.ResponseWriter, r *http.Request) {
	result, _, ok := h.compute(w, r)
	if !ok {
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	result, payload, ok := h.compute(w, r)
	if !ok {
		return
	}
	data, err := report.RenderPayslipPDF(result, report.PayslipMeta{
		EmployeeName: payload.EmployeeName,
		Period:       payload.Period,
	})
	if err != nil {
		requestctx.Logger(r.Context()).Error("render payslip failed", zap.Error(err))
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to render payslip", middleware.GetRequestID(r.Context()))
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordPayslip()
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+payslipFilename(payload)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// compute decodes, validates and settles the request body. It writes the
// error response itself and reports false when the caller should stop.
func (h *Handler) compute(w http.ResponseWriter, r *http.Request) (payroll.Result, computePayload, bool) {
	reqID := middleware.GetRequestID(r.Context())
	payload, err := decodePayload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", reqID)
			return payroll.Result{}, payload, false
		}
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be a JSON object with a numeric salaryBase", reqID)
		return payroll.Result{}, payload, false
	}

	in, err := payload.input()
	if err != nil {
		if h.Metrics != nil {
			h.Metrics.RecordInvalidInput()
		}
		if issues := shared.IssuesFrom(err); issues != nil {
			shared.FailValidation(w, reqID, issues)
			return payroll.Result{}, payload, false
		}
		api.Fail(w, http.StatusBadRequest, "invalid_input", err.Error(), reqID)
		return payroll.Result{}, payload, false
	}

	result := h.Calc.Compute(in)
	if h.Metrics != nil {
		h.Metrics.RecordComputation(result.ComprehensiveSalary)
	}
	requestctx.Logger(r.Context()).Debug("payroll computed",
		zap.Stringer("salaryBase", result.SalaryBase),
		zap.Int("paymentDays", result.PaymentDays),
		zap.Stringer("wagesPaid", result.WagesPaid),
	)
	return result, payload, true
}

func payslipFilename(p computePayload) string {
	name := "nomina"
	if period := strings.TrimSpace(p.Period); period != "" {
		name += "-" + period
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name) + ".pdf"
}

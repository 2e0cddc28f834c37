package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/varunisrani/marketscope/internal/analysis"
	"github.com/varunisrani/marketscope/internal/cache"
	"github.com/varunisrani/marketscope/internal/model"
	"github.com/varunisrani/marketscope/internal/pipeline"
	"github.com/varunisrani/marketscope/internal/questions"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "success",
		"message":   "Market Analysis API is running",
		"timestamp": s.now().Format("2006-01-02 15:04:05"),
	})
}

func (s *Server) handleDetailLevels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   model.DetailLevelCatalog,
	})
}

func (s *Server) handleReportTypes(w http.ResponseWriter, r *http.Request) {
	data := make(map[string]string, len(model.ReportTypeCatalog))
	for rt, info := range model.ReportTypeCatalog {
		data[string(rt)] = info.Description
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": data})
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.store.List()
	if err != nil {
		writeError(w, err)
		return
	}
	if reports == nil {
		reports = []model.ReportListing{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "reports": reports})
}

func (s *Server) handleReportContent(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "*")
	if unescaped, err := url.PathUnescape(filename); err == nil {
		filename = unescaped
	}
	content, err := s.store.Read(filename)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "success",
		"content":  content,
		"filename": filename,
	})
}

type questionsRequest struct {
	ReportType  string `json:"report_type"`
	DetailLevel string `json:"detail_level"`
	CompanyName string `json:"company_name"`
	Industry    string `json:"industry"`
	WebsiteData string `json:"website_data"`
}

func (s *Server) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req questionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "No data provided")
		return
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"report_type", req.ReportType},
		{"detail_level", req.DetailLevel},
		{"company_name", req.CompanyName},
		{"industry", req.Industry},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		writeError(w, &analysis.ValidationError{Missing: missing})
		return
	}

	rt, err := model.ParseReportType(req.ReportType)
	if err != nil {
		writeError(w, err)
		return
	}
	level, err := model.ParseDetailLevel(req.DetailLevel)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	qs := s.reporter.Questions(r.Context(), questions.Request{
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		ReportType:  rt,
		DetailLevel: level,
		Context:     req.WebsiteData,
	})

	sess := s.sessions.Put(cache.QuestionSession{
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		ReportType:  rt,
		DetailLevel: level,
		Questions:   qs,
		Website:     req.WebsiteData,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data": map[string]any{
			"questions":  qs,
			"session_id": sess.ID,
		},
	})
}

type analyzeWebsiteRequest struct {
	WebsiteURL  string `json:"website_url"`
	CompanyName string `json:"company_name"`
}

func (s *Server) handleAnalyzeWebsite(w http.ResponseWriter, r *http.Request) {
	var req analyzeWebsiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.WebsiteURL) == "" {
		writeMessage(w, http.StatusBadRequest, "Website URL is required")
		return
	}
	if req.CompanyName == "" {
		req.CompanyName = "Unknown Company"
	}

	profile, text, ok := s.reporter.AnalyzeWebsite(r.Context(), req.CompanyName, req.WebsiteURL)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Failed to scrape website")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data": map[string]any{
			"analysis":     profile,
			"website_data": text,
		},
	})
}

type generateReportRequest struct {
	ReportType string         `json:"report_type"`
	Inputs     map[string]any `json:"inputs"`
}

// reserved inputs are mapped onto the analysis input directly
var reservedInputs = map[string]bool{
	"company_name": true,
	"industry":     true,
	"website":      true,
	"website_url":  true,
	"website_data": true,
	"time_period":  true,
	"detail_level": true,
	"answers":      true,
	"session_id":   true,
	"focus_areas":  true,
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req generateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "No data provided")
		return
	}
	if strings.TrimSpace(req.ReportType) == "" {
		writeMessage(w, http.StatusBadRequest, "Report type is required")
		return
	}
	rt, err := model.ParseReportType(req.ReportType)
	if err != nil {
		writeError(w, err)
		return
	}
	inputs := req.Inputs
	if inputs == nil {
		inputs = map[string]any{}
	}
	if str(inputs, "company_name") == "" {
		writeMessage(w, http.StatusBadRequest, "Company name is required")
		return
	}
	if err := analysis.Check(rt, inputs); err != nil {
		writeError(w, err)
		return
	}

	level, err := model.ParseDetailLevel(str(inputs, "detail_level"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	in := analysis.Input{
		Company: model.CompanyInfo{
			CompanyName: str(inputs, "company_name"),
			Industry:    str(inputs, "industry"),
			Website:     firstNonEmpty(str(inputs, "website"), str(inputs, "website_url")),
			TimePeriod:  str(inputs, "time_period"),
		},
		ReportType:  rt,
		DetailLevel: level,
		Answers:     parseAnswers(inputs["answers"]),
		FocusAreas:  stringList(inputs["focus_areas"]),
		Extra:       extraInputs(inputs),
	}

	var website string
	if id := str(inputs, "session_id"); id != "" {
		if sess, ok := s.sessions.Get(id); ok {
			in.Questions = sess.Questions
			website = sess.Website
		}
	}
	if data := str(inputs, "website_data"); data != "" {
		website = data
	}

	status, body, err := s.runReport(r, in, website)
	if err != nil {
		writeError(w, err)
		return
	}
	if id := str(inputs, "session_id"); id != "" {
		s.sessions.Delete(id)
	}

	body["summary"] = map[string]any{
		"company":       in.Company.CompanyName,
		"report_type":   string(rt),
		"industry":      in.Company.Industry,
		"timestamp":     s.now().Format("2006-01-02 15:04:05"),
		"analysis_type": str(inputs, "analysis_type"),
		"metrics":       orEmptyMap(inputs["metrics"]),
		"focus_areas":   orEmptyList(inputs["focus_areas"]),
		"market_region": firstNonEmpty(str(inputs, "market_region"), "global"),
	}
	writeJSON(w, status, body)
}

type marketAnalysisRequest struct {
	CompanyName string   `json:"company_name"`
	Industry    string   `json:"industry"`
	FocusAreas  []string `json:"focus_areas"`
	TimePeriod  string   `json:"time_period"`
}

func (s *Server) handleMarketAnalysis(w http.ResponseWriter, r *http.Request) {
	var req marketAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.CompanyName) == "" {
		writeMessage(w, http.StatusBadRequest, "Company name is required")
		return
	}
	if req.TimePeriod == "" {
		req.TimePeriod = "current"
	}
	if req.FocusAreas == nil {
		req.FocusAreas = []string{}
	}

	in := analysis.Input{
		Company: model.CompanyInfo{
			CompanyName: req.CompanyName,
			Industry:    req.Industry,
			TimePeriod:  req.TimePeriod,
		},
		ReportType:  model.MarketAnalysis,
		DetailLevel: model.Quick,
		FocusAreas:  req.FocusAreas,
	}

	status, body, err := s.runReport(r, in, "")
	if err != nil {
		writeError(w, err)
		return
	}
	body["summary"] = map[string]any{
		"company":     req.CompanyName,
		"industry":    req.Industry,
		"focus_areas": req.FocusAreas,
		"time_period": req.TimePeriod,
	}
	writeJSON(w, status, body)
}

// runReport waits for a free slot, resolves website context and runs the
// pipeline. Validation happens before any scraping so bad requests stay cheap.
func (s *Server) runReport(r *http.Request, in analysis.Input, website string) (int, map[string]any, error) {
	ctx := r.Context()

	if _, err := analysis.Assemble(in); err != nil {
		return 0, nil, err
	}

	if err := s.gate.Acquire(ctx, 1); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", errBusy, err)
	}
	defer s.gate.Release(1)

	if website == "" && in.Company.Website != "" {
		if text, ok := s.reporter.Scrape(ctx, in.Company.Website); ok {
			website = s.reporter.Summarize(ctx, text, in.Company.Industry)
		}
	}
	in.Website = website

	res, err := s.reporter.Generate(ctx, in)
	if err != nil {
		return 0, nil, err
	}

	return http.StatusOK, map[string]any{
		"status":            "success",
		"validation_report": pipeline.ReadFile(res.Files.ValidationPath),
		"analysis_report":   res.Report,
		"files":             res.Files,
	}, nil
}

func str(m map[string]any, key string) string {
	return text(m[key])
}

// text renders a decoded JSON value, mapping null to ""
func text(v any) string {
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseAnswers accepts {"1": "..."} objects or [{"id": 1, "answer": "..."}] lists
func parseAnswers(v any) model.AnswerSet {
	out := model.AnswerSet{}
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(k), "Q"))
			if err != nil {
				continue
			}
			out[id] = text(val)
		}
	case []any:
		for i, item := range t {
			switch e := item.(type) {
			case map[string]any:
				id := i + 1
				if n, ok := e["id"].(float64); ok {
					id = int(n)
				}
				out[id] = str(e, "answer")
			case string:
				out[i+1] = e
			}
		}
	}
	return out
}

func stringList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s := text(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return nil
	}
}

func extraInputs(inputs map[string]any) model.ExtraInputs {
	var extra model.ExtraInputs
	for k, v := range inputs {
		if reservedInputs[k] {
			continue
		}
		if extra == nil {
			extra = model.ExtraInputs{}
		}
		extra[k] = v
	}
	return extra
}

func orEmptyMap(v any) any {
	if v == nil {
		return map[string]any{}
	}
	return v
}

func orEmptyList(v any) any {
	if v == nil {
		return []any{}
	}
	return v
}

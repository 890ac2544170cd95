package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/archive"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/followup"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/summary"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/transcription"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
	pkgvalidator "github.com/johnquangdev/meeting-scribe/pkg/validator"
)

type fakeTranscriber struct {
	opts    transcription.Options
	existed bool
	err     error
}

func (f *fakeTranscriber) TranscribeFile(_ context.Context, path string, opts transcription.Options) (*transcription.Result, error) {
	f.opts = opts
	_, statErr := os.Stat(path)
	f.existed = statErr == nil
	if f.err != nil {
		return nil, f.err
	}
	return &transcription.Result{
		Transcript: entities.NewTranscript("hello world", "pt", path),
	}, nil
}

type fakeSummarizer struct {
	text string
	opts summary.Options
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string, opts summary.Options) (*summary.Result, error) {
	f.text, f.opts = text, opts
	title := "Weekly sync"
	s := entities.MeetingSummary{Title: &title, Summary: "All good."}
	s.Normalize()
	return &summary.Result{Summary: s, Outcome: summary.OutcomeParsed}, nil
}

func (f *fakeSummarizer) SummarizeTranscript(ctx context.Context, t entities.Transcript, opts summary.Options) (*summary.Result, error) {
	return f.Summarize(ctx, t.Text, opts)
}

type fakeFollowUps struct{}

func (fakeFollowUps) Generate(_ context.Context, s entities.MeetingSummary, meta followup.Meta) (entities.FollowUpEmail, error) {
	return followup.Fallback(s, meta), nil
}

type testServer struct {
	e           *echo.Echo
	transcriber *fakeTranscriber
	summarizer  *fakeSummarizer
}

func newTestServer(t *testing.T, token string, store archive.ObjectStore) *testServer {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	cfg.Server.MaxUploadMB = 1
	cfg.Server.APIToken = token

	ts := &testServer{transcriber: &fakeTranscriber{}, summarizer: &fakeSummarizer{}}
	archiveSvc := archive.NewService(store, 0, nil)

	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = HTTPErrorHandler(nil)
	NewRouter(cfg,
		NewUI(),
		NewTranscription(ts.transcriber, archiveSvc, t.TempDir(), cfg.Server.MaxUploadMB, "gpt-4o-transcribe", "json", nil),
		NewSummary(ts.summarizer, fakeFollowUps{}, archiveSvc, "pt", nil),
		NewHistory(nil, nil),
		NewArchive(archiveSvc, nil),
	).Setup(e)
	ts.e = e
	return ts
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func uploadRequest(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if filename != "" {
		fw, err := w.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(content)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/transcriptions", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

type envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
	Data    json.RawMessage   `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	if data != nil {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return env
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, "", nil)
	rec := ts.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"test"`) {
		t.Fatalf("health = %d %s", rec.Code, rec.Body.String())
	}
}

func TestIndexServesUI(t *testing.T) {
	ts := newTestServer(t, "", nil)
	rec := ts.do(httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/v1/transcriptions") {
		t.Fatal("index page does not call the API")
	}
}

func TestTranscribe(t *testing.T) {
	ts := newTestServer(t, "", nil)
	rec := ts.do(uploadRequest(t, "standup.mp3", []byte("ID3fake"), map[string]string{
		"model":    "whisper-1",
		"language": "en",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Transcript entities.Transcript `json:"transcript"`
		PlainText  string              `json:"plain_text"`
		Model      string              `json:"model"`
		Format     string              `json:"format"`
	}
	decode(t, rec, &resp)

	if !ts.transcriber.existed {
		t.Error("upload was not on disk during transcription")
	}
	if ts.transcriber.opts.Model != "whisper-1" || ts.transcriber.opts.Language != "en" {
		t.Errorf("opts = %+v", ts.transcriber.opts)
	}
	if resp.Model != "whisper-1" || resp.Format != "json" {
		t.Errorf("model/format = %q/%q", resp.Model, resp.Format)
	}
	if resp.PlainText != "hello world" {
		t.Errorf("plain text = %q", resp.PlainText)
	}
	if resp.Transcript.SourcePath == nil || *resp.Transcript.SourcePath != "standup.mp3" {
		t.Errorf("source path = %v", resp.Transcript.SourcePath)
	}
}

func TestTranscribe_Rejections(t *testing.T) {
	ts := newTestServer(t, "", nil)

	tests := []struct {
		name   string
		req    *http.Request
		status int
	}{
		{"missing file", uploadRequest(t, "", nil, nil), http.StatusBadRequest},
		{"unknown format", uploadRequest(t, "a.mp3", []byte("x"), map[string]string{"format": "xml"}), http.StatusBadRequest},
		{"too large", uploadRequest(t, "a.mp3", bytes.Repeat([]byte("x"), 1<<20+1), nil), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(tt.req)
			if rec.Code != tt.status {
				t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
			}
			env := decode(t, rec, nil)
			if env.Code != int(errors.ErrorCode_INVALID_ARGUMENT) {
				t.Errorf("code = %d", env.Code)
			}
		})
	}
}

func TestTranscribe_UpstreamErrorIsRendered(t *testing.T) {
	ts := newTestServer(t, "", nil)
	ts.transcriber.err = errors.ErrUnsupportedFormat("text/plain", "notes.mp3")

	rec := ts.do(uploadRequest(t, "notes.mp3", []byte("x"), nil))
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestSummarize(t *testing.T) {
	ts := newTestServer(t, "", nil)
	rec := ts.do(postJSON("/v1/summaries", `{"text":"we agreed to ship","context":"sprint 4","temperature":0.5}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Outcome  string `json:"outcome"`
		Markdown string `json:"markdown"`
	}
	decode(t, rec, &resp)

	if ts.summarizer.text != "we agreed to ship" || ts.summarizer.opts.ExtraContext != "sprint 4" {
		t.Errorf("summarizer got %q %+v", ts.summarizer.text, ts.summarizer.opts)
	}
	if ts.summarizer.opts.Temperature == nil || *ts.summarizer.opts.Temperature != 0.5 {
		t.Errorf("temperature override lost")
	}
	if resp.Outcome != "parsed" || !strings.HasPrefix(resp.Markdown, "# Weekly sync") {
		t.Errorf("resp = %+v", resp)
	}
}

func TestSummarize_TranscriptUsesDefaultLanguage(t *testing.T) {
	ts := newTestServer(t, "", nil)
	rec := ts.do(postJSON("/v1/summaries", `{"transcript":{"text":"bom dia","segments":null}}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if ts.summarizer.text != "bom dia" {
		t.Errorf("text = %q", ts.summarizer.text)
	}
}

func TestSummarize_RequiresInput(t *testing.T) {
	ts := newTestServer(t, "", nil)
	rec := ts.do(postJSON("/v1/summaries", `{}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestSummarize_ArchiveDisabled(t *testing.T) {
	ts := newTestServer(t, "", nil)
	rec := ts.do(postJSON("/v1/summaries", `{"text":"x","archive":true}`))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	env := decode(t, rec, nil)
	if env.Details["hint"] == "" {
		t.Error("expected a configuration hint")
	}
}

func TestSummarize_ArchivesAndLists(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ts := newTestServer(t, "", store)

	rec := ts.do(postJSON("/v1/summaries", `{"text":"x","archive":true}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		ArchivedAs string `json:"archived_as"`
	}
	decode(t, rec, &resp)
	if !strings.HasPrefix(resp.ArchivedAs, archive.PrefixSummaries) {
		t.Fatalf("archived as %q", resp.ArchivedAs)
	}

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/v1/archive/files?prefix=summaries/", nil))
	var files struct {
		Files []string `json:"files"`
		Count int      `json:"count"`
	}
	decode(t, rec, &files)
	if files.Count != 1 || files.Files[0] != resp.ArchivedAs {
		t.Errorf("files = %+v", files)
	}

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/v1/archive/url?file="+resp.ArchivedAs, nil))
	var url struct {
		URL string `json:"url"`
	}
	decode(t, rec, &url)
	if !strings.HasPrefix(url.URL, "file://") {
		t.Errorf("url = %q", url.URL)
	}
}

func TestMarkdown(t *testing.T) {
	ts := newTestServer(t, "", nil)
	rec := ts.do(postJSON("/v1/summaries/markdown", `{"summary":{"title":"Retro","summary":"Went well.","action_items":[{"description":"Book room","owner":"Ana","due_date":null}]}}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "# Retro") || !strings.Contains(body, "Book room") {
		t.Errorf("markdown = %q", body)
	}
}

func TestMarkdown_RejectsEmptySummary(t *testing.T) {
	ts := newTestServer(t, "", nil)
	rec := ts.do(postJSON("/v1/summaries/markdown", `{"summary":{"title":"Retro"}}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestFollowUp(t *testing.T) {
	ts := newTestServer(t, "", nil)
	rec := ts.do(postJSON("/v1/followups", `{"summary":{"title":"Retro","summary":"Went well."},"sender_name":"Bia","meeting_date":"2024-05-02"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Email entities.FollowUpEmail `json:"email"`
		Text  string                 `json:"text"`
	}
	decode(t, rec, &resp)
	if resp.Email.Subject == "" || resp.Text == "" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Email.MeetingDate != "2024-05-02" {
		t.Errorf("meeting date = %q", resp.Email.MeetingDate)
	}
}

func TestHistory_DatabaseDisabled(t *testing.T) {
	ts := newTestServer(t, "", nil)
	for _, path := range []string{"/v1/history/transcripts", "/v1/history/summaries"} {
		rec := ts.do(httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d", path, rec.Code)
		}
		env := decode(t, rec, nil)
		if env.Code != int(errors.ErrorCode_CONFIGURATION) {
			t.Errorf("%s: code = %d", path, env.Code)
		}
	}
}

func TestTokenAuthProtectsAPI(t *testing.T) {
	ts := newTestServer(t, "s3cret", nil)

	rec := ts.do(postJSON("/v1/summaries", `{"text":"x"}`))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	env := decode(t, rec, nil)
	if env.Code != int(errors.ErrorCode_UNAUTHENTICATED) {
		t.Errorf("code = %d", env.Code)
	}

	req := postJSON("/v1/summaries", `{"text":"x"}`)
	req.Header.Set(echo.HeaderAuthorization, "Bearer s3cret")
	if rec := ts.do(req); rec.Code != http.StatusOK {
		t.Errorf("authorized status = %d", rec.Code)
	}

	if rec := ts.do(httptest.NewRequest(http.MethodGet, "/health", nil)); rec.Code != http.StatusOK {
		t.Errorf("health must stay public, got %d", rec.Code)
	}
}

func TestUnknownRouteUsesErrorShape(t *testing.T) {
	ts := newTestServer(t, "", nil)
	rec := ts.do(httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decode(t, rec, nil)
	if env.Code != int(errors.ErrorCode_NOT_FOUND) {
		t.Errorf("code = %d", env.Code)
	}
}

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/voice-minutes/internal/summarizer"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MINUTES_ANTHROPIC_API_KEY", "")
	t.Setenv("MINUTES_GEMINI_API_KEY", "")
	t.Setenv("MINUTES_OUTPUT_DIR", "")
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	missing := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := loadConfig(missing, false)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Speech.Language != "ja-JP" {
		t.Errorf("Language = %q, want default ja-JP", cfg.Speech.Language)
	}

	if _, err := loadConfig(missing, true); err == nil {
		t.Error("loadConfig() should fail for an explicit missing file")
	}
}

func TestListenPrintsRecognizedText(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "logging:\n  level: error\n")

	out, err := run(t, "売上は\n\n好調です\n", "--config", path, "listen")
	if err != nil {
		t.Fatalf("listen error = %v", err)
	}
	if !strings.Contains(out, "売上は 好調です") {
		t.Errorf("output = %q, want the accumulated text", out)
	}
}

func TestListenWithoutSpeech(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "logging:\n  level: error\n")

	out, err := run(t, "", "--config", path, "listen")
	if err != nil {
		t.Fatalf("listen error = %v", err)
	}
	if !strings.Contains(out, "認識されたテキストがありません") {
		t.Errorf("output = %q, want the empty-text notice", out)
	}
}

const topicSummary = "■1. 議題 ：予算会議\n・来期予算の確認\n■2. 日時\n   2024-01-01\n■4. まとめ\n・承認"

// newMessagesServer answers every Messages API call with topicSummary and
// records the last prompt.
func newMessagesServer(t *testing.T, prompt *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && len(req.Messages) > 0 {
			*prompt = req.Messages[0].Content
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": topicSummary}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func docxConfig(t *testing.T, baseURL, outDir string) string {
	t.Helper()
	return writeConfig(t, fmt.Sprintf(`
anthropic:
  api_key: test-key
  base_url: %q
document:
  output_dir: %q
  format: docx
logging:
  level: error
`, baseURL, outDir))
}

func TestListenGenerate(t *testing.T) {
	clearEnv(t)
	var prompt string
	srv := newMessagesServer(t, &prompt)
	outDir := filepath.Join(t.TempDir(), "out")

	out, err := run(t, "来期の予算を\n確認しました\n", "--config", docxConfig(t, srv.URL, outDir), "listen", "--generate")
	if err != nil {
		t.Fatalf("listen --generate error = %v", err)
	}

	if !strings.Contains(prompt, "来期の予算を 確認しました") {
		t.Errorf("prompt does not embed the recognized text:\n%s", prompt)
	}
	if _, err := os.Stat(filepath.Join(outDir, "予算会議.docx")); err != nil {
		t.Errorf("document not saved: %v", err)
	}
	if !strings.Contains(out, "Word保存完了: 予算会議.docx") {
		t.Errorf("output = %q, want the saved notification", out)
	}
}

func TestListenGenerateReportsFailure(t *testing.T) {
	clearEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	out, err := run(t, "売上は好調です\n", "--config", docxConfig(t, srv.URL, t.TempDir()), "listen", "--generate")
	var remote *summarizer.RemoteServiceError
	if !errors.As(err, &remote) {
		t.Errorf("listen --generate error = %v, want RemoteServiceError", err)
	}
	if !strings.Contains(out, "AI通信でエラーが発生しました") {
		t.Errorf("output = %q, want the remote failure notification", out)
	}
}

func TestGenerate(t *testing.T) {
	clearEnv(t)
	var prompt string
	srv := newMessagesServer(t, &prompt)

	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	transcript := filepath.Join(dir, "meeting.txt")
	if err := os.WriteFile(transcript, []byte("来期の予算を確認しました"), 0644); err != nil {
		t.Fatal(err)
	}
	path := docxConfig(t, srv.URL, outDir)

	out, err := run(t, "", "--config", path, "generate", "--file", transcript, "--date", "2024-01-01")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}

	if !strings.Contains(prompt, "2024-01-01") || !strings.Contains(prompt, "来期の予算を確認しました") {
		t.Errorf("prompt does not embed the date and transcript:\n%s", prompt)
	}
	if _, err := os.Stat(filepath.Join(outDir, "予算会議.docx")); err != nil {
		t.Errorf("document not saved: %v", err)
	}
	if !strings.Contains(out, "Word保存完了: 予算会議.docx") {
		t.Errorf("output = %q, want the saved notification", out)
	}
}

func TestGenerateRejectsBadDate(t *testing.T) {
	clearEnv(t)
	transcript := filepath.Join(t.TempDir(), "meeting.txt")
	if err := os.WriteFile(transcript, []byte("text"), 0644); err != nil {
		t.Fatal(err)
	}
	path := writeConfig(t, "anthropic:\n  api_key: test-key\nlogging:\n  level: error\n")

	if _, err := run(t, "", "--config", path, "generate", "--file", transcript, "--date", "01/02/2024"); err == nil {
		t.Error("generate should reject a malformed --date")
	}
}

func TestGenerateMissingCredential(t *testing.T) {
	clearEnv(t)
	transcript := filepath.Join(t.TempDir(), "meeting.txt")
	if err := os.WriteFile(transcript, []byte("text"), 0644); err != nil {
		t.Fatal(err)
	}
	path := writeConfig(t, "logging:\n  level: error\n")

	_, err := run(t, "", "--config", path, "generate", "--file", transcript)
	if !errors.Is(err, summarizer.ErrMissingCredential) {
		t.Errorf("generate error = %v, want ErrMissingCredential", err)
	}
}

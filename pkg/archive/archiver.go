// Package archive persists submission source code to the deduplicated
// on-disk solution tree: solutions/<problem>/<problem>_<n>.<ext>
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"chef-scraper/pkg/config"
	"chef-scraper/pkg/fetch"
	"chef-scraper/pkg/models"
	"chef-scraper/pkg/utils"
)

// Archiver fetches plaintext submission sources and writes them under the
// solutions tree. Numbering is append-only: n = existing file count + 1,
// never reused. Safe only while no two workers target the same problem
// directory concurrently; the orchestrator partitions work one problem per
// task to uphold that
type Archiver struct {
	fetcher *fetch.Fetcher
	baseURL string
	dir     string // Solutions root
	log     *logrus.Entry
}

// NewArchiver creates an Archiver writing under cfg.SolutionsDir
func NewArchiver(f *fetch.Fetcher, cfg *config.AppConfig, log *logrus.Logger) *Archiver {
	return &Archiver{
		fetcher: f,
		baseURL: cfg.BaseURL,
		dir:     cfg.SolutionsDir,
		log:     log.WithField("component", "archiver"),
	}
}

// CleanCode strips leading newline characters only. Trailing content and
// interior blank lines are kept verbatim
func CleanCode(code string) string {
	return strings.TrimLeft(code, "\n")
}

// Archive fetches the plaintext source for one submission and writes it to a
// new numbered file in the problem's directory. Returns false on any failure;
// a failing submission never disturbs its siblings
func (a *Archiver) Archive(ctx context.Context, problem string, sub models.SubmissionRecord) bool {
	subLog := a.log.WithFields(logrus.Fields{"problem": problem, "submission": sub.ID})

	ext, ok := Extension(sub.Language)
	if !ok {
		subLog.Warnf("%v: %q", utils.ErrUnknownLanguage, sub.Language)
		return false
	}

	url := fmt.Sprintf("%s/viewplaintext/%s", a.baseURL, sub.ID)
	doc, err := a.fetcher.FetchMarkup(ctx, url, nil)
	if err != nil {
		subLog.Errorf("Fetch source failed: %v (%s)", err, utils.CategorizeError(err))
		return false
	}

	code := CleanCode(doc.Text())

	problemDir := filepath.Join(a.dir, utils.SanitizeProblemCode(problem))
	if err := os.MkdirAll(problemDir, 0o755); err != nil {
		subLog.Errorf("Create problem dir failed: %v", utils.WrapErrorf(utils.ErrFilesystem, "%v", err))
		return false
	}

	n, err := nextFileNumber(problemDir)
	if err != nil {
		subLog.Errorf("List problem dir failed: %v", utils.WrapErrorf(utils.ErrFilesystem, "%v", err))
		return false
	}

	path := filepath.Join(problemDir, fmt.Sprintf("%s_%d.%s", utils.SanitizeProblemCode(problem), n, ext))
	content := a.header(ext, problem, sub) + "\n" + code
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		subLog.Errorf("Write solution failed: %v", utils.WrapErrorf(utils.ErrFilesystem, "%v", err))
		return false
	}

	subLog.WithField("path", path).Debug("Archived solution")
	return true
}

// nextFileNumber is count(existing entries) + 1. Gaps left by removed files
// are never refilled
func nextFileNumber(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	return len(entries) + 1, nil
}

// header renders the provenance comment block: source URL, verdict, execution
// time and memory, in the comment syntax of the target language
func (a *Archiver) header(ext, problem string, sub models.SubmissionRecord) string {
	lines := []struct{ label, value string }{
		{"QUESTION URL", fmt.Sprintf("%s/problems/%s", a.baseURL, problem)},
		{"STATUS", sub.Verdict},
		{"TIME", sub.Time},
		{"MEMORY", sub.Memory},
	}

	var b strings.Builder
	if ext == "pp" {
		for _, l := range lines {
			fmt.Fprintf(&b, "{ %s: %s }\n", l.label, l.value)
		}
		return b.String()
	}

	prefix := commentPrefix(ext)
	for _, l := range lines {
		fmt.Fprintf(&b, "%s %s: %s\n", prefix, l.label, l.value)
	}
	return b.String()
}

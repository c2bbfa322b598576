package chefapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"chef-scraper/pkg/models"
	"chef-scraper/pkg/utils"
)

// rankingsResponse mirrors the contest rankings feed shape. Rank and score
// come back as either numbers or decorated strings, so both are captured raw
type rankingsResponse struct {
	ContestInfo struct {
		ContestCode string `json:"contest_code"`
	} `json:"contest_info"`
	ContestName string `json:"contest_name"`
	List        []struct {
		Rank           json.RawMessage            `json:"rank"`
		Score          json.RawMessage            `json:"score"`
		ProblemsStatus map[string]json.RawMessage `json:"problems_status"`
	} `json:"list"`
	Problems []struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"problems"`
}

// Rankings returns one user's participation record for a contest. ok is false
// when the fetch failed or the feed held no row for the user; an empty record
// never aborts sibling contest lookups
func (c *Client) Rankings(ctx context.Context, contest, username string) (models.ContestRecord, bool) {
	query := fmt.Sprintf("itemsPerPage=100&order=asc&page=1&search=%s&sortBy=rank", url.QueryEscape(username))
	path := fmt.Sprintf("/api/rankings/%s?%s", url.PathEscape(contest), query)
	ctxLog := c.log.WithFields(logrus.Fields{"contest": contest, "username": username})

	var resp rankingsResponse
	if err := c.fetcher.FetchJSON(ctx, c.baseURL+path, c.apiHeaders(path), &resp); err != nil {
		ctxLog.Errorf("Rankings fetch failed: %v (%s)", err, utils.CategorizeError(err))
		return models.ContestRecord{}, false
	}

	if len(resp.List) == 0 {
		ctxLog.Debug("No ranking row for user")
		return models.ContestRecord{}, false
	}
	row := resp.List[0]

	contestCode := resp.ContestInfo.ContestCode
	if contestCode == "" {
		contestCode = contest
	}

	record := models.ContestRecord{
		ContestCode: contestCode,
		ContestName: resp.ContestName,
		Rank:        models.ParseRank(rawText(row.Rank)),
	}
	if score, err := ParseScore(rawText(row.Score)); err == nil {
		record.TotalScore = score
	} else {
		ctxLog.Warnf("Unparseable score %q: %v", rawText(row.Score), err)
	}

	record.ProblemsSolved = make(map[string]models.ProblemStatus, len(row.ProblemsStatus))
	for code, raw := range row.ProblemsStatus {
		var status struct {
			Score json.RawMessage `json:"score"`
		}
		var score float64
		if err := json.Unmarshal(raw, &status); err == nil {
			score, _ = ParseScore(rawText(status.Score))
		}
		record.ProblemsSolved[code] = models.ProblemStatus{
			Score:          score,
			QuestionLink:   fmt.Sprintf("%s/%s/problems/%s", c.baseURL, contestCode, code),
			SubmissionLink: fmt.Sprintf("%s/rankings/%s/bestsolution/%s,%s", c.baseURL, contest, code, username),
		}
		record.TotalSolved++
	}

	record.TotalProblems = make([]models.ContestProblem, 0, len(resp.Problems))
	for _, p := range resp.Problems {
		record.TotalProblems = append(record.TotalProblems, models.ContestProblem{
			Code:         p.Code,
			Name:         p.Name,
			QuestionLink: fmt.Sprintf("%s/%s/problems/%s", c.baseURL, contestCode, p.Code),
		})
	}

	return record, true
}

// Scores sometimes carry a trailing parenthesized annotation, e.g.
// "100.00 (2)". Strip it before conversion
var scoreSuffix = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// ParseScore converts a raw score text to a float, tolerating a trailing
// parenthesized suffix
func ParseScore(s string) (float64, error) {
	s = scoreSuffix.ReplaceAllString(strings.TrimSpace(s), "")
	if s == "" {
		return 0, utils.WrapErrorf(utils.ErrParsing, "empty score")
	}
	return strconv.ParseFloat(s, 64)
}

// rawText unquotes a raw JSON scalar so numbers and strings read the same
func rawText(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	return strings.Trim(s, `"`)
}

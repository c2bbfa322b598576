package models

import (
	"encoding/json"
	"strconv"
)

// SolvedLink references one problem a user has completed, as listed on their
// profile page
type SolvedLink struct {
	Code string `json:"code"` // Display text, e.g. "FLOW001"
	Href string `json:"href"` // Reference path as found on the page (usually relative)
}

// SubmissionRecord is one historical attempt at a problem as reported by the
// submissions listing endpoint. Text fields are kept verbatim from upstream
type SubmissionRecord struct {
	ID       string `json:"id"`
	Language string `json:"language"`
	Verdict  string `json:"verdict"`
	Time     string `json:"time"`
	Memory   string `json:"memory"`
}

// Rank is a leaderboard rank that may be non-numeric upstream ("NA",
// "Inactive"). Numeric ranks marshal as numbers, everything else as the raw text
type Rank struct {
	Value int
	Text  string // Set only when the source text is not numeric
}

// ParseRank keeps s as text unless it is a plain integer
func ParseRank(s string) Rank {
	if n, err := strconv.Atoi(s); err == nil {
		return Rank{Value: n}
	}
	return Rank{Text: s}
}

// IsNumeric reports whether the rank carries an integer value
func (r Rank) IsNumeric() bool {
	return r.Text == ""
}

// MarshalJSON emits a JSON number for numeric ranks and a string otherwise
func (r Rank) MarshalJSON() ([]byte, error) {
	if r.IsNumeric() {
		return json.Marshal(r.Value)
	}
	return json.Marshal(r.Text)
}

// UnmarshalJSON accepts either form
func (r *Rank) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*r = Rank{Value: n}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRank(s)
	return nil
}

// ProfileRecord is the flat profile snapshot returned by a stats query.
// Fields holds the normalized side-navigation entries (name -> value); the
// remaining members come from fixed structural locations on the page
type ProfileRecord struct {
	Fields                  map[string]string `json:"fields"`
	Badges                  map[string]string `json:"badges,omitempty"`
	BadgeNote               string            `json:"badge_note,omitempty"` // Raw widget text when badge parsing fell back
	TotalStars              int               `json:"total_stars"`
	Rating                  int               `json:"rating"`
	Division                string            `json:"division"`
	GlobalRank              Rank              `json:"global_rank"`
	CountryRank             Rank              `json:"country_rank"`
	ProblemsFullySolved     int               `json:"problem_fully_solved"`
	ProblemsPartiallySolved int               `json:"problem_partially_solved"`
	ContestsParticipated    int               `json:"contest_participate"`
}

// ProblemStatus is one solved problem's entry from a contest rankings feed,
// augmented with navigation links
type ProblemStatus struct {
	Score          float64 `json:"score"`
	QuestionLink   string  `json:"question_link"`
	SubmissionLink string  `json:"submission_link"`
}

// ContestProblem describes one problem offered in a contest
type ContestProblem struct {
	Code         string `json:"code"`
	Name         string `json:"name,omitempty"`
	QuestionLink string `json:"question_link"`
}

// ContestRecord is one user's participation in one contest
type ContestRecord struct {
	ContestCode    string                   `json:"contest_code"`
	ContestName    string                   `json:"contest_name"`
	Rank           Rank                     `json:"rank"`
	TotalScore     float64                  `json:"total_score"`
	ProblemsSolved map[string]ProblemStatus `json:"problems_solved"`
	TotalProblems  []ContestProblem         `json:"total_problems"`
	TotalSolved    int                      `json:"total_solved"`
}

// ContestReport aggregates the contest fan-out results for a user
type ContestReport struct {
	ContestDetails []ContestRecord `json:"contest_details"`
	TotalContests  int             `json:"total_contest"`
	TotalScraped   int             `json:"total_scraped"`
}

package models

type MatchResponse struct {
	Filename   string  `json:"filename"`
	MatchScore float64 `json:"match_score"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

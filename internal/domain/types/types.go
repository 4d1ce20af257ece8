// Package types contains shapes shared between the ranking store and the
// transports.
package types

// RankedLead is one row of the lead pipeline ranking.
type RankedLead struct {
	Rank    int    `json:"rank"`
	LeadID  string `json:"lead_id"`
	Company string `json:"company"`
	Score   int    `json:"score"`
	Tier    string `json:"tier"`
}

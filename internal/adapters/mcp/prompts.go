package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/okian/revintel/internal/domain/model"
	"github.com/okian/revintel/internal/domain/scoring"
	"github.com/okian/revintel/pkg/apperr"
)

func registerPrompts(s *Server) {
	s.addPrompt(promptDef{
		Name:        "analyze-account-expansion",
		Description: "Template for CS teams to assess the upsell opportunity of an account",
		Arguments:   []promptArg{{Name: "account_id", Description: "Account ID to analyze", Required: true}},
	}, s.accountExpansionPrompt)

	s.addPrompt(promptDef{
		Name:        "weekly-lead-report",
		Description: "Template for a sales leadership pipeline quality report",
		Arguments:   []promptArg{{Name: "week_number", Description: "ISO week number for the report, defaults to the current week"}},
	}, s.weeklyLeadReportPrompt)

	s.addPrompt(promptDef{
		Name:        "explain-low-score",
		Description: "Template to explain why a lead scored poorly and how to improve it",
		Arguments:   []promptArg{{Name: "lead_id", Description: "Lead ID to explain", Required: true}},
	}, s.explainLowScorePrompt)
}

func requiredArg(op string, args map[string]string, name string) (string, error) {
	v := strings.TrimSpace(args[name])
	if v == "" {
		return "", apperr.Validation(op, "missing prompt argument", apperr.FieldError{Field: name, Message: "is required"})
	}
	return v, nil
}

func userPrompt(description, text string) getPromptResult {
	return getPromptResult{
		Description: description,
		Messages:    []promptMessage{{Role: "user", Content: contentBlock{Type: "text", Text: text}}},
	}
}

func (s *Server) accountExpansionPrompt(ctx context.Context, args map[string]string) (getPromptResult, error) {
	id, err := requiredArg("analyze-account-expansion", args, "account_id")
	if err != nil {
		return getPromptResult{}, err
	}
	acc, err := s.deps.GetAccount(ctx, id)
	if err != nil {
		return getPromptResult{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Account Expansion Analysis: %s\n\n", acc.Company)
	fmt.Fprintf(&b, "**Account ID:** %s\n**Current Plan:** %s\n**MRR:** $%.0f\n**Status:** %s\n\n", acc.ID, acc.Plan, acc.MRR, acc.Status)
	b.WriteString("## Task\nAnalyze this account's usage signals and determine:\n")
	b.WriteString("1. Upsell readiness score (0-100)\n2. Recommended next tier\n")
	b.WriteString("3. Key talking points for the CS conversation\n4. Estimated expansion revenue potential\n\n")
	b.WriteString("## Usage Signals\n")
	writeUsage(&b, acc.Usage)
	b.WriteString("\nPlease provide a structured analysis with specific recommendations.\n")

	return userPrompt("Account expansion analysis for "+acc.Company, b.String()), nil
}

func writeUsage(b *strings.Builder, u model.UsageSignals) {
	fmt.Fprintf(b, "- Daily active users: %d\n", u.DailyActiveUsers)
	fmt.Fprintf(b, "- Features adopted: %d\n", u.FeaturesAdopted)
	fmt.Fprintf(b, "- API calls per day: %d\n", u.APICallsPerDay)
	fmt.Fprintf(b, "- Support tickets (30d): %d\n", u.SupportTickets30d)
	if u.NPSScore != nil {
		fmt.Fprintf(b, "- NPS: %d\n", *u.NPSScore)
	} else {
		b.WriteString("- NPS: not surveyed\n")
	}
	fmt.Fprintf(b, "- Logins (7d): %d\n", u.LoginFrequency7d)
	fmt.Fprintf(b, "- Usage decline: %.0f%%\n", u.UsageDeclinePct)
	fmt.Fprintf(b, "- MRR change (90d): %+.0f%%\n", u.MRRChangePct)
}

func (s *Server) weeklyLeadReportPrompt(ctx context.Context, args map[string]string) (getPromptResult, error) {
	const op = "weekly-lead-report"
	week := strings.TrimSpace(args["week_number"])
	if week == "" {
		_, w := time.Now().ISOWeek()
		week = strconv.Itoa(w)
	} else if n, err := strconv.Atoi(week); err != nil || n < 1 || n > 53 {
		return getPromptResult{}, apperr.Validation(op, "invalid prompt argument",
			apperr.FieldError{Field: "week_number", Message: "must be between 1 and 53"})
	}

	top, err := s.deps.TopLeads(ctx, 5)
	if err != nil {
		return getPromptResult{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Weekly Lead Quality Report - Week %s\n\n", week)
	b.WriteString("## Task\nGenerate a leadership summary of lead pipeline quality including:\n\n")
	b.WriteString("1. **Lead Volume & Velocity**\n   - Total new leads this week\n   - Hot/Warm/Cold distribution\n   - Week-over-week trend\n\n")
	b.WriteString("2. **Quality Metrics**\n   - Average lead score\n   - Demo request rate\n   - Trial start rate\n   - Top performing industries\n\n")
	b.WriteString("3. **Pipeline Health**\n   - High-value opportunities (enterprise leads scoring >80)\n   - At-risk leads (engaged but not converting)\n   - Recommended focus areas\n\n")
	b.WriteString("4. **Action Items**\n   - Leads requiring immediate follow-up\n   - Campaigns to optimize\n   - Resource allocation recommendations\n\n")
	if len(top) > 0 {
		b.WriteString("## Current Top Leads\n")
		for _, l := range top {
			fmt.Fprintf(&b, "%d. %s (%s): %d/100, %s\n", l.Rank, l.Company, l.LeadID, l.Score, l.Tier)
		}
		b.WriteString("\n")
	}
	b.WriteString("Please analyze the lead data and provide a concise executive summary.\n")

	return userPrompt("Weekly lead pipeline quality report for week "+week, b.String()), nil
}

func (s *Server) explainLowScorePrompt(ctx context.Context, args map[string]string) (getPromptResult, error) {
	id, err := requiredArg("explain-low-score", args, "lead_id")
	if err != nil {
		return getPromptResult{}, err
	}
	lead, err := s.deps.GetLead(ctx, id)
	if err != nil {
		return getPromptResult{}, err
	}
	res := s.deps.Engine().ScoreLead(scoring.LeadFeaturesFrom(lead))

	var b strings.Builder
	fmt.Fprintf(&b, "# Low Lead Score Explanation: %s\n\n", lead.Company)
	fmt.Fprintf(&b, "**Lead ID:** %s\n**Score:** %d/100 (%s tier)\n**Industry:** %s\n**Size:** %d employees\n\n",
		lead.ID, res.Score, res.Tier, lead.Industry, lead.EmployeeCount)
	b.WriteString("## Score Breakdown\n")
	for _, a := range res.Attributions {
		fmt.Fprintf(&b, "- %s: %.1f%% of score (%s) - %s\n", a.Feature, a.Percentage, a.Impact, a.Description)
	}
	fmt.Fprintf(&b, "\n%s\n\n", res.Explanation)
	fmt.Fprintf(&b, "## Task\nThis lead scored in the %s tier. Please provide:\n\n", res.Tier)
	b.WriteString("1. **Root Cause Analysis**\n   - Which signals are weakest?\n   - What's missing compared to high-scoring leads?\n\n")
	b.WriteString("2. **Improvement Plan**\n   - Specific actions to increase engagement\n   - Content or campaigns to deploy\n   - Timeline for re-scoring\n\n")
	b.WriteString("3. **Resource Assessment**\n   - Is this lead worth continued investment?\n   - Should we adjust qualification criteria?\n\n")
	b.WriteString("Provide a structured analysis with specific, actionable recommendations.\n")

	return userPrompt("Explanation for low score of "+lead.Company, b.String()), nil
}

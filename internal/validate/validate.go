package validate

import (
	"context"
	"fmt"

	"mutt/internal/bloodline"
	"mutt/internal/store"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeDanglingParent   = "dangling_parent"
	codeSelfParent       = "self_parent"
	codeEmptyRoute       = "empty_route"
	codeRouteNotMember   = "route_not_member"
	codeUnqualifiedRoute = "unqualified_route"
	codeGradeMismatch    = "grade_mismatch"
	codeUnknownGrade     = "unknown_grade"
	codeMissingRoute     = "missing_route"
)

type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	TokenID  int64    `json:"tokenId"`
}

type Report struct {
	Issues []Issue `json:"issues"`
}

func (r *Report) Errors() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

func (r *Report) Warnings() int {
	return len(r.Issues) - r.Errors()
}

// Source is the read side of the store the checks need.
type Source interface {
	ListAllMutts(ctx context.Context) ([]store.Mutt, error)
	ListDanglingParents(ctx context.Context) ([]store.ParentRef, error)
}

func Run(ctx context.Context, src Source) (*Report, error) {
	if src == nil {
		return nil, fmt.Errorf("store is required")
	}

	issues := make([]Issue, 0)

	dangling, err := src.ListDanglingParents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dangling parents: %w", err)
	}
	for _, ref := range dangling {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     codeDanglingParent,
			Message:  fmt.Sprintf("parent %s points at missing mutt %d", ref.Side, ref.ParentID),
			TokenID:  ref.TokenID,
		})
	}

	mutts, err := src.ListAllMutts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list mutts: %w", err)
	}
	for i := range mutts {
		issues = append(issues, checkMutt(&mutts[i])...)
	}

	return &Report{Issues: issues}, nil
}

func checkMutt(m *store.Mutt) []Issue {
	var issues []Issue
	add := func(severity Severity, code, format string, args ...any) {
		issues = append(issues, Issue{
			Severity: severity,
			Code:     code,
			Message:  fmt.Sprintf(format, args...),
			TokenID:  m.TokenID,
		})
	}

	if m.ParentA == m.TokenID || m.ParentB == m.TokenID {
		add(SeverityError, codeSelfParent, "mutt is its own parent")
	}

	grade, err := bloodline.ParseGrade(string(m.Bloodline))
	if err != nil {
		add(SeverityError, codeUnknownGrade, "%v", err)
		return issues
	}

	origin := m.ParentA <= 0 && m.ParentB <= 0
	switch {
	case origin && grade == bloodline.GradeHalfblood:
		add(SeverityWarn, codeGradeMismatch, "origin mutt graded halfblood")
	case !origin && grade == bloodline.GradeMutt:
		add(SeverityWarn, codeGradeMismatch, "bred mutt graded mutt")
	}

	route := m.PurebloodRoute
	if grade.Elevated() && route == nil {
		add(SeverityError, codeMissingRoute, "%s mutt has no stored route", grade)
	}
	if route == nil {
		return issues
	}

	if len(route.Path) == 0 {
		add(SeverityWarn, codeEmptyRoute, "stored route has an empty path")
		return issues
	}
	if !route.Contains(m.TokenID) {
		add(SeverityWarn, codeRouteNotMember, "stored route %v does not include the mutt", route.Path)
	}
	if !route.Qualified {
		add(SeverityWarn, codeUnqualifiedRoute, "stored route %v is not qualified", route.Path)
	}
	return issues
}

package validate

import (
	"context"
	"errors"
	"testing"

	"mutt/internal/bloodline"
	"mutt/internal/store"
)

type mockSource struct {
	mutts    []store.Mutt
	dangling []store.ParentRef
	err      error
}

func (m *mockSource) ListAllMutts(ctx context.Context) ([]store.Mutt, error) {
	return m.mutts, m.err
}

func (m *mockSource) ListDanglingParents(ctx context.Context) ([]store.ParentRef, error) {
	return m.dangling, nil
}

func TestRun_Clean(t *testing.T) {
	route := &bloodline.Route{Path: []int64{3, 1}, AvgRating: 4.8, TotalReviews: 10, Qualified: true}
	src := &mockSource{mutts: []store.Mutt{
		{TokenID: 1, Bloodline: bloodline.GradePureblood, PurebloodRoute: route},
		{TokenID: 2, Bloodline: bloodline.GradeMutt},
		{TokenID: 3, ParentA: 1, ParentB: 2, Bloodline: bloodline.GradeSacred, PurebloodRoute: route},
	}}

	report, err := Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("expected no issues, got %+v", report.Issues)
	}
}

func TestRun_ReportsIssues(t *testing.T) {
	src := &mockSource{
		dangling: []store.ParentRef{{TokenID: 5, Side: bloodline.SideB, ParentID: 77}},
		mutts: []store.Mutt{
			{TokenID: 1, Bloodline: bloodline.GradeHalfblood},
			{TokenID: 2, ParentA: 1, Bloodline: bloodline.GradeMutt},
			{TokenID: 3, ParentA: 3, ParentB: 1, Bloodline: bloodline.GradeHalfblood},
			{TokenID: 4, ParentA: 1, Bloodline: bloodline.GradePureblood},
			{TokenID: 6, ParentA: 1, Bloodline: bloodline.GradePureblood,
				PurebloodRoute: &bloodline.Route{Path: []int64{9, 1}, Qualified: false}},
			{TokenID: 7, ParentA: 1, Bloodline: bloodline.GradeHalfblood,
				PurebloodRoute: &bloodline.Route{}},
			{TokenID: 8, Bloodline: "royal"},
		},
	}

	report, err := Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := make(map[string][]int64)
	for _, issue := range report.Issues {
		got[issue.Code] = append(got[issue.Code], issue.TokenID)
	}

	tests := []struct {
		code string
		want []int64
	}{
		{codeDanglingParent, []int64{5}},
		{codeGradeMismatch, []int64{1, 2}},
		{codeSelfParent, []int64{3}},
		{codeMissingRoute, []int64{4}},
		{codeRouteNotMember, []int64{6}},
		{codeUnqualifiedRoute, []int64{6}},
		{codeEmptyRoute, []int64{7}},
		{codeUnknownGrade, []int64{8}},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			ids := got[tt.code]
			if len(ids) != len(tt.want) {
				t.Fatalf("%s: got %v, want %v", tt.code, ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Fatalf("%s: got %v, want %v", tt.code, ids, tt.want)
				}
			}
		})
	}

	if report.Errors() != 4 {
		t.Errorf("errors = %d, want 4", report.Errors())
	}
	if report.Warnings() != 5 {
		t.Errorf("warnings = %d, want 5", report.Warnings())
	}
}

func TestRun_Errors(t *testing.T) {
	if _, err := Run(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil source")
	}

	src := &mockSource{err: errors.New("boom")}
	if _, err := Run(context.Background(), src); err == nil {
		t.Fatal("expected error from source")
	}
}

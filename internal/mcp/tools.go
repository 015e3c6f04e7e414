package mcp

import (
	"bytes"
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/mortality/internal/dataset"
	"github.com/rpggio/mortality/internal/domain/comparison"
	"github.com/rpggio/mortality/internal/domain/ztest"
	"github.com/rpggio/mortality/internal/report"
)

// ZTestParams are the arguments of proportion_ztest.
type ZTestParams struct {
	EventA float64 `json:"event_a" jsonschema:"event count of group A"`
	TotalA float64 `json:"total_a" jsonschema:"total count of group A"`
	EventB float64 `json:"event_b" jsonschema:"event count of group B"`
	TotalB float64 `json:"total_b" jsonschema:"total count of group B"`
	LabelA string  `json:"label_a,omitempty" jsonschema:"display name of group A"`
	LabelB string  `json:"label_b,omitempty" jsonschema:"display name of group B"`
	Alpha  float64 `json:"alpha,omitempty" jsonschema:"significance level in (0, 1); defaults to 0.05"`
}

// GroupParams selects one side of compare_groups.
type GroupParams struct {
	Label    string           `json:"label,omitempty" jsonschema:"display name of the group"`
	Selector dataset.Selector `json:"selector" jsonschema:"row filter; empty lists do not constrain"`
}

// CompareGroupsParams are the arguments of compare_groups.
type CompareGroupsParams struct {
	Name   string      `json:"name,omitempty" jsonschema:"name to record the comparison under"`
	GroupA GroupParams `json:"group_a" jsonschema:"first group"`
	GroupB GroupParams `json:"group_b" jsonschema:"second group"`
	Event  string      `json:"event,omitempty" jsonschema:"event measure column; defaults to COVID-19 Deaths"`
	Total  string      `json:"total,omitempty" jsonschema:"total measure column; defaults to Total Deaths"`
	Alpha  float64     `json:"alpha,omitempty" jsonschema:"significance level in (0, 1)"`
}

// ListComparisonsParams are the arguments of list_comparisons.
type ListComparisonsParams struct {
	Name        string `json:"name,omitempty" jsonschema:"only comparisons recorded under this name"`
	Significant *bool  `json:"significant,omitempty" jsonschema:"filter by verdict"`
	Limit       int    `json:"limit,omitempty" jsonschema:"maximum number of results"`
	Offset      int    `json:"offset,omitempty" jsonschema:"offset for pagination"`
}

// GetComparisonParams are the arguments of get_comparison.
type GetComparisonParams struct {
	ID string `json:"id" jsonschema:"comparison ID"`
}

// DatasetReportParams are the arguments of dataset_report.
type DatasetReportParams struct {
	State string `json:"state,omitempty" jsonschema:"state whose rows back the national tables; defaults to United States"`
	TopN  int    `json:"top_n,omitempty" jsonschema:"size of ranked tables"`
}

// ComparisonList is the list_comparisons payload.
type ComparisonList struct {
	Comparisons []comparison.Comparison `json:"comparisons"`
}

type tools struct {
	cfg Config
}

func registerTools(server *sdkmcp.Server, t *tools) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "proportion_ztest",
		Description: "Pooled two-proportion z-test on raw counts; returns proportions, z-score, two-tailed p-value and verdict",
	}, t.proportionZTest)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "compare_groups",
		Description: "Filter two groups from the loaded dataset, sum their measures and run the z-test",
	}, t.compareGroups)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_comparisons",
		Description: "List recorded comparisons, newest first",
	}, t.listComparisons)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_comparison",
		Description: "Get a recorded comparison by ID",
	}, t.getComparison)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "dataset_report",
		Description: "Descriptive tables for the loaded dataset",
	}, t.datasetReport)
}

func (t *tools) proportionZTest(ctx context.Context, _ *sdkmcp.CallToolRequest, in ZTestParams) (*sdkmcp.CallToolResult, any, error) {
	c, err := t.cfg.Comparisons.Compare(ctx, comparison.CompareRequest{
		LabelA: in.LabelA,
		LabelB: in.LabelB,
		GroupA: ztest.GroupSummary{EventCount: in.EventA, TotalCount: in.TotalA},
		GroupB: ztest.GroupSummary{EventCount: in.EventB, TotalCount: in.TotalB},
		Alpha:  in.Alpha,
	})
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(c)
}

func (t *tools) compareGroups(ctx context.Context, _ *sdkmcp.CallToolRequest, in CompareGroupsParams) (*sdkmcp.CallToolResult, any, error) {
	c, err := t.cfg.Comparisons.Run(ctx, t.cfg.Rows, comparison.Definition{
		Name:   in.Name,
		GroupA: comparison.Group{Label: in.GroupA.Label, Selector: in.GroupA.Selector},
		GroupB: comparison.Group{Label: in.GroupB.Label, Selector: in.GroupB.Selector},
		Event:  in.Event,
		Total:  in.Total,
		Alpha:  in.Alpha,
	})
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(c)
}

func (t *tools) listComparisons(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListComparisonsParams) (*sdkmcp.CallToolResult, any, error) {
	list, err := t.cfg.Comparisons.List(ctx, comparison.ListOptions{
		Name:        in.Name,
		Significant: in.Significant,
		Limit:       in.Limit,
		Offset:      in.Offset,
	})
	if err != nil {
		return errorResult(err), nil, nil
	}
	if list == nil {
		list = []comparison.Comparison{}
	}
	return jsonResult(ComparisonList{Comparisons: list})
}

func (t *tools) getComparison(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetComparisonParams) (*sdkmcp.CallToolResult, any, error) {
	c, err := t.cfg.Comparisons.Get(ctx, in.ID)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(c)
}

func (t *tools) datasetReport(_ context.Context, _ *sdkmcp.CallToolRequest, in DatasetReportParams) (*sdkmcp.CallToolResult, any, error) {
	opts := t.cfg.ReportOptions
	if in.State != "" {
		opts.State = in.State
	}
	if in.TopN > 0 {
		opts.TopN = in.TopN
	}

	var buf bytes.Buffer
	if err := report.WriteJSON(&buf, report.Build(t.cfg.Rows, nil, opts)); err != nil {
		return errorResult(err), nil, nil
	}
	return textResult(buf.String()), nil, nil
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return textResult(string(data)), nil, nil
}

func textResult(text string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
	}
}

func errorResult(err error) *sdkmcp.CallToolResult {
	apiErr := MapError(err)
	data, mErr := json.Marshal(apiErr)
	if mErr != nil {
		data = []byte(apiErr.Error())
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
		IsError: true,
	}
}

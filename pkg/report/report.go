package report

import (
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Report collects the outcome of a destructive run for rendering at
// the end.
type Report struct {
	DeletedResult []Result `json:"deleted,omitempty"`
	SkippedResult []Result `json:"skipped,omitempty"`
	FailedResult  []Result `json:"failed,omitempty"`
}

type Result struct {
	Kind    string `json:"kind"`
	Ref     string `json:"ref"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

func NewReport() *Report {
	return &Report{
		DeletedResult: make([]Result, 0),
		SkippedResult: make([]Result, 0),
		FailedResult:  make([]Result, 0),
	}
}

func (r *Report) TotalCount() int {
	return len(r.DeletedResult) + len(r.SkippedResult) + len(r.FailedResult)
}

func (r *Report) AddDeletedResult(kind, ref, path, msg string) {
	r.DeletedResult = append(r.DeletedResult, Result{
		Kind:    kind,
		Ref:     ref,
		Path:    path,
		Message: msg,
	})
}

func (r *Report) AddSkippedResult(kind, ref, path, msg string) {
	r.SkippedResult = append(r.SkippedResult, Result{
		Kind:    kind,
		Ref:     ref,
		Path:    path,
		Message: msg,
	})
}

func (r *Report) AddFailedResult(kind, ref, path, msg string) {
	r.FailedResult = append(r.FailedResult, Result{
		Kind:    kind,
		Ref:     ref,
		Path:    path,
		Message: msg,
	})
}

func (r *Report) Render(w io.Writer) {
	totalResult := r.mergeIntoOneResult(true)
	size := len(totalResult)
	data := make([][]string, size)
	for i, result := range totalResult {
		data[i] = []string{
			result.Kind, result.Ref, result.Path, result.Message,
		}
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Type", "Ref", "Path", "Result"})
	table.SetFooter([]string{
		"Total", strconv.Itoa(size), "", "",
	})
	table.SetAutoMergeCellsByColumnIndex([]int{0})
	table.SetRowLine(true)
	table.AppendBulk(data)
	table.Render()
}

func (r *Report) mergeIntoOneResult(sortByRef bool) []Result {
	totalResult := append(r.DeletedResult, r.SkippedResult...)
	totalResult = append(totalResult, r.FailedResult...)

	if sortByRef {
		sort.Slice(totalResult, func(i, j int) bool {
			return totalResult[i].Ref < totalResult[j].Ref
		})
	}

	return totalResult
}

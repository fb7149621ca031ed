package render

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/scubr/scubr-migrate/internal/domain/models"
	"github.com/scubr/scubr-migrate/internal/usecase"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Color styles for table format
var (
	nsBg               = color.BgYellow
	chainBg            = color.BgCyan
	nsHeader           = color.New(nsBg, color.FgBlack)
	nsHeaderBold       = color.New(nsBg, color.FgBlack, color.Bold)
	chainHeader        = color.New(chainBg, color.FgBlack)
	chainHeaderBold    = color.New(chainBg, color.FgBlack, color.Bold)
	contractStyle      = color.New(color.FgGreen, color.Bold)
	addressStyle       = color.New(color.FgWhite)
	timestampStyle     = color.New(color.Faint)
	sequenceStyle      = color.New(color.FgCyan)
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
)

type TableData [][]string

// DeploymentsRenderer renders deployment lists as tree-style tables or structured documents
type DeploymentsRenderer struct {
	out    io.Writer
	format string
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, format string) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out, format: format}
}

// ValidateFormat rejects unknown --format values
func ValidateFormat(format string) error {
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("invalid format %q (valid: %s, %s, %s)", format, FormatTable, FormatJSON, FormatYAML)
	}
}

// Render writes the list in the configured format
func (r *DeploymentsRenderer) Render(result *usecase.DeploymentListResult) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(nonNil(result.Deployments))
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(nonNil(result.Deployments)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return r.renderTable(result)
	}
}

func nonNil(deployments []*models.Deployment) []*models.Deployment {
	if deployments == nil {
		return []*models.Deployment{}
	}
	return deployments
}

func (r *DeploymentsRenderer) renderTable(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	groups := lo.GroupBy(result.Deployments, func(d *models.Deployment) string { return d.Namespace })
	namespaces := lo.Keys(groups)
	sort.Strings(namespaces)

	// widths are shared by every table so columns line up across chains
	var allTables []TableData
	for _, deps := range groups {
		for _, chainDeps := range lo.GroupBy(deps, func(d *models.Deployment) uint64 { return d.ChainID }) {
			allTables = append(allTables, buildDeploymentTable(chainDeps))
		}
	}
	widths := calculateTableColumnWidths(allTables)

	for _, ns := range namespaces {
		nsLabel := fmt.Sprintf("%-12s", "namespace:")
		nsValue := fmt.Sprintf("%-30s", strings.ToUpper(ns))
		fmt.Fprintln(r.out, nsHeader.Sprintf("   ◎ %s %s", nsLabel, nsHeaderBold.Sprint(nsValue)))

		chains := lo.GroupBy(groups[ns], func(d *models.Deployment) uint64 { return d.ChainID })
		chainIDs := lo.Keys(chains)
		sort.Slice(chainIDs, func(i, j int) bool { return chainIDs[i] < chainIDs[j] })

		for idx, chainID := range chainIDs {
			isLast := idx == len(chainIDs)-1
			treePrefix, continuation := "├─", "│ "
			if isLast {
				treePrefix, continuation = "└─", "  "
			}

			chainLabel := fmt.Sprintf("%-12s", "chain:")
			chainValue := fmt.Sprintf("%-30s", fmt.Sprintf("%d", chainID))
			fmt.Fprintf(r.out, "%s%s%s\n", treePrefix,
				chainHeader.Sprintf(" ⛓ %s ", chainLabel),
				chainHeaderBold.Sprint(chainValue))
			fmt.Fprintln(r.out, continuation)

			fmt.Fprintf(r.out, "%s%s\n", continuation, sectionHeaderStyle.Sprint("CONTRACTS"))
			fmt.Fprint(r.out, renderTableWithWidths(buildDeploymentTable(chains[chainID]), widths, continuation))
			fmt.Fprintln(r.out)

			if !isLast {
				fmt.Fprintln(r.out, continuation)
			} else {
				fmt.Fprintln(r.out)
			}
		}
	}

	fmt.Fprintf(r.out, "Total deployments: %d\n", result.Summary.Total)
	return nil
}

// buildDeploymentTable lists deployments by contract name, newest sequence first
func buildDeploymentTable(deployments []*models.Deployment) TableData {
	sorted := append([]*models.Deployment(nil), deployments...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ContractName == sorted[j].ContractName {
			return sorted[i].Sequence > sorted[j].Sequence
		}
		return sorted[i].ContractName < sorted[j].ContractName
	})

	tableData := make(TableData, 0, len(sorted))
	for _, dep := range sorted {
		tableData = append(tableData, []string{
			contractStyle.Sprint(dep.ContractName) + sequenceStyle.Sprintf(" #%d", dep.Sequence),
			addressStyle.Sprint(dep.Address.Hex()),
			fmt.Sprintf("block %d", dep.BlockNumber),
			timestampStyle.Sprint(dep.CreatedAt.Format("2006-01-02 15:04:05")),
		})
	}
	return tableData
}

// renderTableWithWidths renders a table with specific column widths
func renderTableWithWidths(tableData TableData, columnWidths []int, continuationPrefix string) string {
	if len(tableData) == 0 {
		return ""
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}

	colConfigs := make([]table.ColumnConfig, len(columnWidths))
	for i, width := range columnWidths {
		if i == 0 {
			width += 2 + len([]rune(continuationPrefix))
		}
		colConfigs[i] = table.ColumnConfig{
			Number:   i + 1,
			Align:    text.AlignLeft,
			WidthMin: width,
			WidthMax: width,
		}
	}
	t.SetColumnConfigs(colConfigs)

	for _, row := range tableData {
		tableRow := make(table.Row, len(row))
		for i, cell := range row {
			if i == 0 {
				tableRow[i] = continuationPrefix + cell
			} else {
				tableRow[i] = cell
			}
		}
		t.AppendRow(tableRow)
	}

	return t.Render()
}

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[mGKHF]`)

func stripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// calculateTableColumnWidths calculates column widths for multiple tables
func calculateTableColumnWidths(tables []TableData) []int {
	maxCols := 0
	for _, t := range tables {
		for _, row := range t {
			maxCols = max(maxCols, len(row))
		}
	}

	widths := make([]int, maxCols)
	for _, t := range tables {
		for _, row := range t {
			for i, cell := range row {
				widths[i] = max(widths[i], len([]rune(stripAnsiCodes(cell))))
			}
		}
	}
	return widths
}

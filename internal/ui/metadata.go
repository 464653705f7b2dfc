package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/satishbabariya/ingres-go/internal/core/introspection/domain"
)

var (
	TableInfoHeaders    = []string{"Schema", "Name", "Type"}
	ColumnHeaders       = []string{"Column", "Type", "Length", "Scale", "Nullable", "Default", "Identity"}
	IndexHeaders        = []string{"Index", "Type", "Columns"}
	RelationshipHeaders = []string{"Primary", "Columns", "Foreign", "Columns"}
	ProcedureHeaders    = []string{"Procedure", "Returns", "Parameters"}
)

func TableInfoRows(infos []domain.TableInfo) [][]string {
	rows := make([][]string, 0, len(infos))
	for _, t := range infos {
		rows = append(rows, []string{t.Schema, t.Name, t.Type.String()})
	}
	return rows
}

func ColumnRows(md domain.TableMetadata) [][]string {
	rows := make([][]string, 0, len(md.Columns))
	for _, c := range md.Columns {
		rows = append(rows, []string{
			c.Name,
			c.Type.String(),
			strconv.Itoa(c.Length),
			strconv.Itoa(c.Scale),
			yesNo(c.Nullable),
			formatDefault(c.DefaultValue),
			yesNo(c.AutoIncrement),
		})
	}
	return rows
}

func IndexRows(md domain.TableMetadata) [][]string {
	rows := make([][]string, 0, len(md.Indexes))
	for _, idx := range md.Indexes {
		rows = append(rows, []string{idx.Name, idx.Type.String(), strings.Join(idx.Columns, ", ")})
	}
	return rows
}

func RelationshipRows(m *domain.EntityRelationshipModel) [][]string {
	rels := m.Relationships()
	rows := make([][]string, 0, len(rels))
	for _, r := range rels {
		rows = append(rows, []string{
			r.Primary.Table, strings.Join(r.Primary.Columns, ", "),
			r.Foreign.Table, strings.Join(r.Foreign.Columns, ", "),
		})
	}
	return rows
}

func ProcedureRows(procs []domain.StoredProcedure) [][]string {
	rows := make([][]string, 0, len(procs))
	for _, p := range procs {
		params := make([]string, 0, len(p.Params))
		for _, param := range p.Params {
			params = append(params, fmt.Sprintf("%s %s %s", param.Type, param.Name, param.DataType))
		}
		rows = append(rows, []string{p.Name, formatReturn(p), strings.Join(params, ", ")})
	}
	return rows
}

func formatReturn(p domain.StoredProcedure) string {
	if p.ReturnTypeFlavor == domain.ReturnsType && p.ReturnType != nil {
		return p.ReturnType.String()
	}
	return p.ReturnTypeFlavor.String()
}

func formatDefault(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// DescribeMarkdown renders table metadata as a markdown document.
func DescribeMarkdown(md domain.TableMetadata) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s `%s`\n\n", strings.ToLower(md.Table.Type.String()), md.Table.QualifiedName())
	writeMarkdownTable(&b, ColumnHeaders, ColumnRows(md))

	if len(md.Indexes) > 0 {
		b.WriteString("\n## Indexes\n\n")
		writeMarkdownTable(&b, IndexHeaders, IndexRows(md))
	}
	return b.String()
}

func writeMarkdownTable(b *strings.Builder, headers []string, rows [][]string) {
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(headers)) + "\n")
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
}

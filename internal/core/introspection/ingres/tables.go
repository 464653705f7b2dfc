package ingres

import (
	"context"
	"fmt"

	"github.com/satishbabariya/ingres-go/internal/core/introspection/domain"
)

const tableInfosQuery = `SELECT table_name, table_type FROM iitables ` +
	`WHERE system_use <> 'S' AND table_name NOT LIKE 'ii%%' AND %s ORDER BY table_name`

func kindPredicate(kinds domain.TableTypes) string {
	switch {
	case kinds.Has(domain.TableTypeTable) && kinds.Has(domain.TableTypeView):
		return "table_type IN ('T', 'V')"
	case kinds.Has(domain.TableTypeTable):
		return "table_type = 'T'"
	case kinds.Has(domain.TableTypeView):
		return "table_type = 'V'"
	default:
		return ""
	}
}

// TableInfos lists user tables and views of the requested kinds, sorted by
// schema and name. System tables and ii* catalogs are excluded.
func (i *Introspector) TableInfos(ctx context.Context, mon domain.ProgressMonitor, kinds domain.TableTypes) ([]domain.TableInfo, error) {
	pred := kindPredicate(kinds)
	if pred == "" {
		return []domain.TableInfo{}, nil
	}

	c, err := i.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	mon = domain.Monitor(mon)
	mon.BeginTask("Loading tables", domain.UnknownTotal)
	defer mon.Done()

	rs, err := i.query(ctx, c, true, fmt.Sprintf(tableInfosQuery, pred))
	if err != nil {
		return nil, i.fail("load tables", err)
	}

	schema := i.schemaName()
	infos := make([]domain.TableInfo, 0, len(rs.rows))
	for _, r := range rs.rows {
		kind := domain.TableTypeView
		if r.String("table_type") == "T" {
			kind = domain.TableTypeTable
		}
		infos = append(infos, domain.TableInfo{
			Type:   kind,
			Schema: schema,
			Name:   r.String("table_name"),
		})
	}

	domain.SortTableInfos(infos)
	i.logger.Debug("loaded tables", "count", len(infos))
	return infos, nil
}

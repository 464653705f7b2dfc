package ingres

import (
	"context"

	"github.com/satishbabariya/ingres-go/internal/core/introspection/domain"
)

// Schema changes are not issued against Ingres. These methods accept the
// request and do nothing.

func (i *Introspector) CreateTable(ctx context.Context, md domain.TableMetadata) error {
	i.logger.Debug("create table not supported", "table", md.Table.QualifiedName())
	return nil
}

func (i *Introspector) AddColumn(ctx context.Context, table domain.TableInfo, col domain.ColumnMetadata) error {
	return nil
}

func (i *Introspector) AlterColumn(ctx context.Context, table domain.TableInfo, col domain.ColumnMetadata) error {
	return nil
}

func (i *Introspector) DropColumn(ctx context.Context, table domain.TableInfo, name string) error {
	return nil
}

func (i *Introspector) CreateIndex(ctx context.Context, table domain.TableInfo, idx domain.Index) error {
	return nil
}

func (i *Introspector) DropIndex(ctx context.Context, table domain.TableInfo, idx domain.IndexInfo) error {
	return nil
}

// EqualsType never reports two column types as equal, so callers always
// treat a type as changed.
func (i *Introspector) EqualsType(a, b domain.ColumnMetadata) bool {
	return false
}

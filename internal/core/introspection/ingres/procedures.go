package ingres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"

	"github.com/satishbabariya/ingres-go/internal/core/introspection/domain"
	"github.com/satishbabariya/ingres-go/internal/core/types"
)

const (
	proceduresQuery = `SELECT DISTINCT procedure_name FROM iiprocedures ORDER BY procedure_name`

	procParamsQuery = `SELECT DISTINCT param_datatype_code, procedure_name, param_input, param_output, param_inout, ` +
		`param_name, param_length, param_sequence, procedure_owner ` +
		`FROM iiproc_params ORDER BY procedure_owner, procedure_name, param_sequence`

	// Older servers only expose gateway procedure parameters.
	gatewayProcParamsQuery = `SELECT DISTINCT param_datatype_code, proc_name, param_input, param_output, param_inout, ` +
		`param_name, param_length, param_sequence, proc_owner ` +
		`FROM iigwprocparams ORDER BY proc_owner, proc_name, param_sequence`

	procResultColumnsQuery = `SELECT DISTINCT procedure_name, rescol_name, rescol_datatype_code, rescol_length, rescol_sequence ` +
		`FROM iiproc_rescols WHERE rescol_name LIKE 'result_column%' ORDER BY procedure_name, rescol_sequence`
)

// Column positions shared by procParamsQuery and gatewayProcParamsQuery.
const (
	paramTypeCode = iota
	paramProcedure
	paramInput
	paramOutput
	paramInOut
	paramName
	paramLength
)

// Column positions in procResultColumnsQuery.
const (
	rescolProcedure = iota
	_
	rescolTypeCode
	rescolLength
)

// SQLSTATE values Ingres reports for a table or view that does not exist.
var unknownObjectStates = map[string]bool{
	"42500": true,
	"42S02": true,
}

// ODBC drivers prefix diagnostics with the SQLSTATE in braces.
var diagStatePattern = regexp.MustCompile(`\{([0-9A-Z]{5})\}`)

// isUnknownObject reports whether err says a catalog does not exist.
func isUnknownObject(err error) bool {
	var st interface{ SQLState() string }
	if errors.As(err, &st) {
		return unknownObjectStates[st.SQLState()]
	}
	for _, m := range diagStatePattern.FindAllStringSubmatch(err.Error(), -1) {
		if unknownObjectStates[m[1]] {
			return true
		}
	}
	return false
}

// StoredProcedures lists database procedures with their parameters and
// return shape. Parameters come from iiproc_params, or from iigwprocparams
// when the former catalog does not exist.
func (i *Introspector) StoredProcedures(ctx context.Context, mon domain.ProgressMonitor) ([]domain.StoredProcedure, error) {
	c, err := i.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	mon = domain.Monitor(mon)
	mon.BeginTask("Loading stored procedures", 3)
	defer mon.Done()

	names, err := i.query(ctx, c, true, proceduresQuery)
	if err != nil {
		return nil, i.fail("load procedures", err)
	}
	mon.Worked(1)

	procs := make([]domain.StoredProcedure, 0, len(names.rows))
	byName := make(map[string]int, len(names.rows))
	for _, r := range names.rows {
		name := r.String("procedure_name")
		if _, dup := byName[name]; dup {
			continue
		}
		byName[name] = len(procs)
		// No Ingres catalog carries procedure remarks, so Description stays empty.
		procs = append(procs, domain.StoredProcedure{Name: name, ReturnTypeFlavor: domain.ReturnsVoid})
	}

	mon.SetTaskName("Loading procedure parameters")
	params, err := i.procedureParams(ctx, c)
	if err != nil {
		return nil, i.fail("load procedure parameters", err)
	}
	for _, r := range params.rows {
		n, ok := byName[asString(r.At(paramProcedure))]
		if !ok {
			continue
		}
		if p, ok := buildParam(r); ok {
			procs[n].Params = append(procs[n].Params, p)
		}
	}
	mon.Worked(1)

	mon.SetTaskName("Loading procedure result columns")
	rescols, err := i.query(ctx, c, true, procResultColumnsQuery)
	switch {
	case err != nil && isUnknownObject(err):
		i.logger.Warn("procedure result columns unavailable", "error", err)
	case err != nil:
		return nil, i.fail("load procedure result columns", err)
	default:
		applyResultColumns(procs, byName, rescols.rows)
	}
	mon.Worked(1)

	return procs, nil
}

func (i *Introspector) procedureParams(ctx context.Context, c *sql.Conn) (*rowSet, error) {
	rs, err := i.query(ctx, c, true, procParamsQuery)
	if err == nil || !isUnknownObject(err) {
		return rs, err
	}

	i.logger.Debug("iiproc_params unavailable, using iigwprocparams", "error", err)
	return i.query(ctx, c, true, gatewayProcParamsQuery)
}

// buildParam converts a parameter row. Rows flagged neither input nor
// output are dropped.
func buildParam(r row) (domain.Param, bool) {
	var kind domain.ParamType
	switch {
	case asString(r.At(paramInput)) == "Y":
		kind = domain.ParamIn
	case asString(r.At(paramOutput)) == "Y":
		kind = domain.ParamOut
	case asString(r.At(paramInOut)) == "Y":
		kind = domain.ParamInOut
	default:
		return domain.Param{}, false
	}

	code, _ := asInt(r.At(paramTypeCode))
	length, _ := asInt(r.At(paramLength))

	return domain.Param{
		Type:     kind,
		Name:     asString(r.At(paramName)),
		DataType: types.SQLTypeFor(types.Normalize(types.Code(code)), length),
	}, true
}

// applyResultColumns sets the return shape: one result column makes a
// typed return, a second turns it into a result set and later columns of
// the same procedure are ignored.
func applyResultColumns(procs []domain.StoredProcedure, byName map[string]int, rows []row) {
	seen := make(map[string]int)
	for _, r := range rows {
		name := asString(r.At(rescolProcedure))
		n, ok := byName[name]
		if !ok {
			continue
		}

		seen[name]++
		switch seen[name] {
		case 1:
			code, _ := asInt(r.At(rescolTypeCode))
			length, _ := asInt(r.At(rescolLength))
			t := types.SQLTypeFor(types.Normalize(types.Code(code)), length)
			procs[n].ReturnTypeFlavor = domain.ReturnsType
			procs[n].ReturnType = &t
		case 2:
			procs[n].ReturnTypeFlavor = domain.ReturnsResultSet
			procs[n].ReturnType = nil
		}
	}
}

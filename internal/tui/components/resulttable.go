package components

import (
	"errors"
	"strconv"

	"github.com/evertras/bubble-table/table"

	uartprobe "github.com/allbin/go-uartprobe"
	"github.com/allbin/go-uartprobe/internal/tui/styles"
)

const (
	columnKeyProbe  = "probe"
	columnKeyResult = "result"
	columnKeyNote   = "note"
)

// ProbeResult carries the outcome of one probe run for display.
type ProbeResult struct {
	Name  string
	Value int
	Err   error
}

// ResultTable renders probe outcomes for the selected port.
type ResultTable struct {
	table table.Model
}

func NewResultTable() *ResultTable {
	columns := []table.Column{
		table.NewColumn(columnKeyProbe, "Probe", 22),
		table.NewColumn(columnKeyResult, "Result", 10),
		table.NewColumn(columnKeyNote, "Note", 34),
	}

	return &ResultTable{
		table: table.New(columns).
			BorderRounded().
			WithBaseStyle(styles.TableBase).
			HeaderStyle(styles.TableHeader),
	}
}

// SetResults replaces the table contents with the given probe outcomes.
func (rt *ResultTable) SetResults(results []ProbeResult) {
	rows := make([]table.Row, 0, len(results))
	for _, r := range results {
		value := "-"
		note := ""
		switch {
		case r.Err == nil:
			value = strconv.Itoa(r.Value)
		case errors.Is(r.Err, uartprobe.ErrNoTriggerDetected),
			errors.Is(r.Err, uartprobe.ErrOverrunNotDetected),
			errors.Is(r.Err, uartprobe.ErrLoopbackFailed):
			note = styles.StatusWarn.Render(r.Err.Error())
		default:
			note = styles.StatusError.Render(r.Err.Error())
		}
		rows = append(rows, table.NewRow(table.RowData{
			columnKeyProbe:  r.Name,
			columnKeyResult: value,
			columnKeyNote:   note,
		}))
	}
	rt.table = rt.table.WithRows(rows)
}

// Clear empties the table.
func (rt *ResultTable) Clear() {
	rt.table = rt.table.WithRows(nil)
}

func (rt *ResultTable) View() string {
	return rt.table.View()
}

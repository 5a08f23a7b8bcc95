package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-thermosim/pkg/fluid"
	"github.com/dd0wney/cluso-thermosim/pkg/media"
	"github.com/dd0wney/cluso-thermosim/pkg/sim"
)

// solvedResult runs a small water loop with a pressure sensor so the
// result carries both state and signal ports.
func solvedResult(t *testing.T) *sim.SystemResult {
	t.Helper()

	backend, err := media.NewIncompressible(media.Water)
	require.NoError(t, err)
	state, err := media.NewStatePT(backend, 100000, 300, 0.01)
	require.NoError(t, err)

	source, err := fluid.NewSourceFixedState("source", state)
	require.NoError(t, err)
	pump, err := fluid.NewPumpSimple("pump", state, 1000)
	require.NoError(t, err)
	sensor, err := fluid.NewSensorP("gauge", state)
	require.NoError(t, err)
	sink, err := fluid.NewSinkFixedState("sink", state)
	require.NoError(t, err)

	sys := sim.NewSystem()
	require.NoError(t, sys.AddModel(source))
	require.NoError(t, sys.AddModel(pump))
	require.NoError(t, sys.AddModel(sensor))
	require.NoError(t, sys.AddModel(sink))
	require.NoError(t, sys.Connect("source_port_b", "pump_port_a"))
	require.NoError(t, sys.Connect("pump_port_b", "gauge_port_a"))
	require.NoError(t, sys.Connect("gauge_port_b", "sink_port_a"))

	result := sys.Solve(context.Background())
	require.Equal(t, sim.StatusSuccess, result.Status)
	return result
}

func parseCSV(t *testing.T, data string) [][]string {
	t.Helper()
	r := csv.NewReader(strings.NewReader(data))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteCSVSections(t *testing.T) {
	result := solvedResult(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, result, DefaultOptions()))
	rows := parseCSV(t, buf.String())

	require.Equal(t, []string{"states"}, rows[0])
	require.Equal(t, stateHeader, rows[1])

	var signalsAt int
	for i, row := range rows {
		if len(row) == 1 && row[0] == "signals" {
			signalsAt = i
			break
		}
	}
	require.Greater(t, signalsAt, 1)
	require.Equal(t, signalHeader, rows[signalsAt+1])

	// 4 models: source 1 state port, pump 2, gauge 2, sink 1.
	stateRows := rows[2:signalsAt]
	assert.Len(t, stateRows, 6)

	// Node names arrive sorted; the pressure gauge sorts first.
	assert.Equal(t, "gauge", stateRows[0][0])
	assert.Equal(t, "SensorP", stateRows[0][1])
	assert.Equal(t, "gauge_port_a", stateRows[0][2])
	assert.Equal(t, "Water", stateRows[0][3])

	// Exactly one signal row: the gauge's measurement outlet.
	signalRows := rows[signalsAt+2:]
	require.Len(t, signalRows, 1)
	assert.Equal(t, []string{"gauge", "SensorP", "gauge_port_d", "101000"}, signalRows[0])
}

func TestWriteCSVDecimalComma(t *testing.T) {
	result := solvedResult(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, result, Options{DecimalComma: true}))
	rows := parseCSV(t, buf.String())

	// Mass flow 0.01 kg/s renders with a decimal comma.
	found := false
	for _, row := range rows {
		if len(row) == len(stateHeader) && row[len(row)-1] == "0,01" {
			found = true
		}
	}
	assert.True(t, found, "expected a mass flow cell written as 0,01")
	assert.NotContains(t, buf.String(), "0.01")
}

func TestWriteCSVDecimalPoint(t *testing.T) {
	result := solvedResult(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, result, Options{DecimalComma: false}))
	assert.Contains(t, buf.String(), "0.01")
	assert.NotContains(t, buf.String(), "0,01")
}

func TestWriteCSVNilResult(t *testing.T) {
	require.Error(t, WriteCSV(&bytes.Buffer{}, nil, DefaultOptions()))
}

func TestSaveWritesFile(t *testing.T) {
	result := solvedResult(t)
	path := t.TempDir() + "/run.csv"

	require.NoError(t, Save(path, result, DefaultOptions()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "states")
	assert.Contains(t, string(data), "signals")
}

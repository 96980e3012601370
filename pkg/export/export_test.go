package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Time", "Room"},
		Rows: [][]string{
			{"05:00 PM", "room-a"},
			{"05:40 PM"}, // short row pads to header width
		},
	}
	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Time,Room\n05:00 PM,room-a\n05:40 PM,\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Strategy", "Score"},
		Rows:    [][]string{{"two_phase", "5"}},
	}
	out, err := NewPDFExporter().Render(data, "Summary", []string{"Applicants: 5"})
	require.NoError(t, err)
	assert.True(t, len(out) > 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestPDFExporterRequiresContent(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{}, "", nil)
	assert.Error(t, err)
}

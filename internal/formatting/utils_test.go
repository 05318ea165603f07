package formatting

import (
	"testing"

	"taskflow/internal/api"

	"github.com/stretchr/testify/assert"
)

func TestPrettyJSON(t *testing.T) {
	out := PrettyJSON(map[string]interface{}{"name": "t1"})
	assert.Contains(t, out, "\"name\": \"t1\"")
}

func TestPrettyJSONUnmarshalableFallsBack(t *testing.T) {
	out := PrettyJSON(func() {})
	assert.NotEmpty(t, out)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "truncat...", truncate("truncated value", 10))
	assert.Equal(t, "abc", truncate("abc", 3))
}

func TestFactorySelectsFormatter(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		format OutputFormat
		want   interface{}
	}{
		{FormatConsole, &ConsoleFormatter{}},
		{FormatJSON, &JSONFormatter{}},
		{FormatYAML, &YAMLFormatter{}},
		{FormatTable, &TableFormatter{}},
		{OutputFormat("bogus"), &ConsoleFormatter{}},
	}
	for _, tt := range tests {
		f := factory.CreateFormatter(Options{Format: tt.format})
		assert.IsType(t, tt.want, f, "format %q", tt.format)
	}
}

func TestValidOutputFormat(t *testing.T) {
	assert.True(t, ValidOutputFormat("json"))
	assert.True(t, ValidOutputFormat("table"))
	assert.False(t, ValidOutputFormat("xml"))
}

func TestConsoleFormatterBlockStatus(t *testing.T) {
	f := NewConsoleFormatter(Options{Format: FormatConsole})

	blocked := api.BlockStatus{
		TaskID:    "t2",
		IsBlocked: true,
		BlockingTasks: []api.Task{
			{ID: "t1", Name: "Design schema", Status: api.TaskStatusInProgress},
		},
		TotalDependencies: 1,
	}
	out := f.FormatBlockStatus(blocked)
	assert.Contains(t, out, "BLOCKED")
	assert.Contains(t, out, "t1")

	free := api.BlockStatus{TaskID: "t3", TotalDependencies: 0}
	out = f.FormatBlockStatus(free)
	assert.Contains(t, out, "not blocked")
}

func TestJSONFormatterQuietIsCompact(t *testing.T) {
	f := NewJSONFormatter(Options{Format: FormatJSON, Quiet: true})
	out := f.FormatBlockStatus(api.BlockStatus{TaskID: "t1"})
	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, `"taskId":"t1"`)
}

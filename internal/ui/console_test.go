package ui_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/rex/internal/ui"
)

func TestAlign(testInstance *testing.T) {
	testCases := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{name: "default_width", text: "list", width: 0, expected: "  list      "},
		{name: "explicit_width", text: "rex", width: 8, expected: "  rex   "},
		{name: "text_longer_than_width", text: "status_quiet", width: 6, expected: "  status_quiet"},
		{name: "exact_width", text: "ab", width: 4, expected: "  ab"},
		{name: "multi_byte_text", text: "café", width: 8, expected: "  café  "},
		{name: "wide_characters", text: "日本", width: 6, expected: "  日本  "},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, ui.Align(testCase.text, testCase.width))
		})
	}
}

func TestVersionTreeRender(testInstance *testing.T) {
	tree := ui.VersionTree{
		ApplicationName:    "rex",
		ApplicationVersion: "0.3.0",
		Dependencies:       map[string]string{"zap": "1.27.0", "cobra": "1.10.1"},
		RuntimeVersion:     "go1.24.3",
		Platform:           "linux/amd64",
	}

	var output bytes.Buffer
	require.NoError(testInstance, tree.Render(&output))
	require.Equal(testInstance,
		"rex Version Tree: \n"+
			"  rex               [ 0.3.0 ]\n"+
			"  cobra             [ 1.10.1 ]\n"+
			"  zap               [ 1.27.0 ]\n"+
			"  Go                [ go1.24.3 ]\n"+
			"  Platform          [ linux/amd64 ]\n",
		output.String(),
	)
}

func TestHelpTextRender(testInstance *testing.T) {
	help := ui.HelpText{
		Name:        "rex-mongo",
		Description: "Perform simple operations on MongoDB locally.",
		Usage:       "rex-mongo <command> <database>",
		Options:     map[string]string{"list": "List the collections in a database.", "drop": "Drop an entire database."},
	}

	var output bytes.Buffer
	require.NoError(testInstance, help.Render(&output))
	require.Equal(testInstance,
		"rex-mongo\n"+
			"Description: \n  Perform simple operations on MongoDB locally.\n"+
			"Usage: \n  rex-mongo <command> <database>\n"+
			"Options:\n"+
			"  drop      - Drop an entire database.\n"+
			"  list      - List the collections in a database.\n"+
			"  version   - Display the current version tree.\n"+
			"  help      - Display this help text.\n",
		output.String(),
	)
}

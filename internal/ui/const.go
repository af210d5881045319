package ui

const (
	//longing for https://github.com/charmbracelet/bubbles/pull/240
	UPPER_20 = 0.8

	EXPORT_INPUT_WIDTH = 32
)

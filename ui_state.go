package main

type mode int

const (
	modeView mode = iota
	modeCommand
	modeTimeWindow
)

type uiState struct {
	mode                    mode
	command                 CommandInput
	timeWindow              timeWindowUI
	loading                 bool
	noticeMsg               string
	noticeType              string
	noticeSeq               int
	searchQuery             string
	visibleStart            int
	visibleEnd              int
	debugCursorHeight       int
	debugHeightFree         int
	debugDesiredAboveHeight int
}
